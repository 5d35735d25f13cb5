package main

import (
	"context"
	"time"

	"github.com/k-capehart/go-salesforce/v3"
	"github.com/rotisserie/eris"

	"github.com/brisa-digital/quiz-crm/internal/crm"
	"github.com/brisa-digital/quiz-crm/internal/crmsync"
	"github.com/brisa-digital/quiz-crm/internal/model"
	"github.com/brisa-digital/quiz-crm/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "quizcrm.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initPusherFactory selects the sync backend from config. The Salesforce
// client authenticates once here; the HTTP backend takes its endpoint and key
// from the runtime CRM config instead.
func initPusherFactory() (crm.PusherFactory, error) {
	switch cfg.Sync.Backend {
	case "http":
		rps := cfg.Sync.RPS
		timeout := time.Duration(cfg.Sync.TimeoutSecs) * time.Second
		return func(c model.CrmConfig) crmsync.Pusher {
			return crmsync.NewHTTP(c.APIURL, c.APIKey, crmsync.HTTPOptions{
				Timeout: timeout,
				RPS:     rps,
			})
		}, nil
	case "salesforce":
		if cfg.Salesforce.ConsumerKey == "" {
			return nil, eris.New("salesforce consumer key is required (QUIZCRM_SALESFORCE_CONSUMER_KEY)")
		}
		sf, err := salesforce.Init(salesforce.Creds{
			Domain:         cfg.Salesforce.Domain,
			ConsumerKey:    cfg.Salesforce.ConsumerKey,
			ConsumerSecret: cfg.Salesforce.ConsumerSecret,
		})
		if err != nil {
			return nil, eris.Wrap(err, "salesforce init")
		}
		rps := cfg.Sync.RPS
		return func(model.CrmConfig) crmsync.Pusher {
			return crmsync.NewSalesforce(sf, rps)
		}, nil
	default:
		return nil, eris.Errorf("unsupported sync backend: %s", cfg.Sync.Backend)
	}
}

// initService wires the store and sync backend into the lead service. The
// returned cleanup closes both.
func initService(ctx context.Context) (*crm.Service, func(), error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, nil, err
	}

	factory, err := initPusherFactory()
	if err != nil {
		st.Close() //nolint:errcheck
		return nil, nil, err
	}

	svc, err := crm.New(ctx, st, crm.Options{
		Pusher:         factory,
		SyncQueueDepth: cfg.Sync.QueueDepth,
		SyncTimeout:    time.Duration(cfg.Sync.TimeoutSecs) * time.Second,
	})
	if err != nil {
		st.Close() //nolint:errcheck
		return nil, nil, err
	}

	cleanup := func() {
		svc.Close()
		st.Close() //nolint:errcheck
	}
	return svc, cleanup, nil
}
