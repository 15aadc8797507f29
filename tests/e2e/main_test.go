package e2e_test

import (
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/DIMO-Network/vehicle-signals-webhook/internal/config"
	"github.com/DIMO-Network/vehicle-signals-webhook/tests"
	"github.com/rs/zerolog"
)

const (
	testWebhookSecret   = "e2e-webhook-secret"
	ingestedEventsTopic = "test.webhook.ingested"
)

var (
	testServices        *TestServices
	globalTestContainer sync.Once
	srvcLock            sync.Mutex
)

type TestServices struct {
	Kafka    *kafkaServer
	Postgres *tests.TestContainer
	refs     atomic.Int64
	Settings config.Settings
}

func GetTestServices(t *testing.T) *TestServices {
	t.Helper()
	srvcLock.Lock()
	globalTestContainer.Do(func() {
		logger := zerolog.New(os.Stdout).Level(zerolog.WarnLevel)
		zerolog.DefaultContextLogger = &logger
		settings := config.Settings{
			Port:                    8080,
			MonPort:                 9090,
			WebhookSecret:           testWebhookSecret,
			SignalInsertConcurrency: 4,
			IngestedEventsTopic:     ingestedEventsTopic,
		}

		testServices = &TestServices{
			Settings: settings,
		}
		var wg sync.WaitGroup
		waitForSetup(t, &wg, func(t *testing.T) {
			kafka := setupKafkaServer(t, ingestedEventsTopic)
			testServices.Kafka = kafka
			testServices.Settings.KafkaBrokers = kafka.GetBrokerAddress(t)
		})
		waitForSetup(t, &wg, func(t *testing.T) {
			db := tests.SetupTestContainer(t)
			testServices.Postgres = db
			testServices.Settings.DB = db.Settings
		})
		wg.Wait()
	})
	srvcLock.Unlock()
	testServices.TeardownIfLastTest(t)
	testServices.Postgres.TeardownIfLastTest(t)
	return testServices
}

func (tc *TestServices) TeardownIfLastTest(t *testing.T) {
	tc.refs.Add(1)
	t.Cleanup(func() {
		refs := tc.refs.Add(-1)
		if refs != 0 {
			return
		}
		if err := tc.Kafka.Close(); err != nil {
			t.Logf("Error closing Kafka: %v", err)
		}
		// reset the onceSetup to allow the next test to run if this one is closed
		globalTestContainer = sync.Once{}
	})
}

func waitForSetup(t *testing.T, wg *sync.WaitGroup, setup func(*testing.T)) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		setup(t)
	}()
}
