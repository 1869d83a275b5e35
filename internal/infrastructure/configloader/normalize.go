package configloader

import (
	"fmt"
	"time"
)

// bootstrapFile 镜像 YAML 配置文件的结构。时长字段以 Go duration
// 字符串表示（如 "5s"、"1m"），归一化时解析。
type bootstrapFile struct {
	Data struct {
		Postgres struct {
			DSN                       string `json:"dsn"`
			MaxOpenConns              int    `json:"max_open_conns"`
			MinOpenConns              int    `json:"min_open_conns"`
			MaxConnLifetime           string `json:"max_conn_lifetime"`
			MaxConnIdleTime           string `json:"max_conn_idle_time"`
			HealthCheckPeriod         string `json:"health_check_period"`
			Schema                    string `json:"schema"`
			PreparedStatementsEnabled bool   `json:"prepared_statements_enabled"`
			PoolMetricsEnabled        bool   `json:"pool_metrics_enabled"`
			Transaction               struct {
				DefaultIsolation string `json:"default_isolation"`
				DefaultTimeout   string `json:"default_timeout"`
				LockTimeout      string `json:"lock_timeout"`
				MaxRetries       int    `json:"max_retries"`
				MetricsEnabled   bool   `json:"metrics_enabled"`
			} `json:"transaction"`
		} `json:"postgres"`
		ObjectStore struct {
			Endpoint        string `json:"endpoint"`
			AccessKeyID     string `json:"access_key_id"`
			SecretAccessKey string `json:"secret_access_key"`
			Bucket          string `json:"bucket"`
			UseSSL          bool   `json:"use_ssl"`
		} `json:"object_store"`
	} `json:"data"`
	Observability struct {
		GlobalAttributes map[string]string `json:"global_attributes"`
		Tracing          struct {
			Enabled            bool              `json:"enabled"`
			Exporter           string            `json:"exporter"`
			Endpoint           string            `json:"endpoint"`
			Headers            map[string]string `json:"headers"`
			Insecure           bool              `json:"insecure"`
			SamplingRatio      float64           `json:"sampling_ratio"`
			BatchTimeout       string            `json:"batch_timeout"`
			ExportTimeout      string            `json:"export_timeout"`
			MaxQueueSize       int               `json:"max_queue_size"`
			MaxExportBatchSize int               `json:"max_export_batch_size"`
			Required           bool              `json:"required"`
			Attributes         map[string]string `json:"attributes"`
		} `json:"tracing"`
		Metrics struct {
			Enabled             bool              `json:"enabled"`
			Exporter            string            `json:"exporter"`
			Endpoint            string            `json:"endpoint"`
			Headers             map[string]string `json:"headers"`
			Insecure            bool              `json:"insecure"`
			Interval            string            `json:"interval"`
			DisableRuntimeStats bool              `json:"disable_runtime_stats"`
			Required            bool              `json:"required"`
			ResourceAttributes  map[string]string `json:"resource_attributes"`
		} `json:"metrics"`
	} `json:"observability"`
	Messaging struct {
		PubSub  pubsubFile `json:"pubsub"`
		Encoder pubsubFile `json:"encoder"`
		Outbox  struct {
			BatchSize      int    `json:"batch_size"`
			TickInterval   string `json:"tick_interval"`
			InitialBackoff string `json:"initial_backoff"`
			MaxBackoff     string `json:"max_backoff"`
			MaxAttempts    int    `json:"max_attempts"`
			PublishTimeout string `json:"publish_timeout"`
			Workers        int    `json:"workers"`
			LockTTL        string `json:"lock_ttl"`
			LoggingEnabled *bool  `json:"logging_enabled"`
			MetricsEnabled *bool  `json:"metrics_enabled"`
		} `json:"outbox"`
		Inbox struct {
			SourceService  string `json:"source_service"`
			MaxConcurrency int    `json:"max_concurrency"`
			LoggingEnabled *bool  `json:"logging_enabled"`
			MetricsEnabled *bool  `json:"metrics_enabled"`
		} `json:"inbox"`
	} `json:"messaging"`
}

type pubsubFile struct {
	ProjectID           string `json:"project_id"`
	TopicID             string `json:"topic_id"`
	SubscriptionID      string `json:"subscription_id"`
	OrderingKeyEnabled  bool   `json:"ordering_key_enabled"`
	LoggingEnabled      bool   `json:"logging_enabled"`
	MetricsEnabled      bool   `json:"metrics_enabled"`
	EmulatorEndpoint    string `json:"emulator_endpoint"`
	PublishTimeout      string `json:"publish_timeout"`
	ExactlyOnceDelivery bool   `json:"exactly_once_delivery"`
	DeadLetterTopicID   string `json:"dead_letter_topic_id"`
	Receive             struct {
		NumGoroutines          int    `json:"num_goroutines"`
		MaxOutstandingMessages int    `json:"max_outstanding_messages"`
		MaxOutstandingBytes    int    `json:"max_outstanding_bytes"`
		MaxExtension           string `json:"max_extension"`
		MaxExtensionPeriod     string `json:"max_extension_period"`
	} `json:"receive"`
}

func fromFile(b *bootstrapFile) (RuntimeConfig, error) {
	if b == nil {
		return RuntimeConfig{}, nil
	}

	p := newDurationParser()
	pg := b.Data.Postgres
	rc := RuntimeConfig{
		Database: DatabaseConfig{
			DSN:               pg.DSN,
			MaxOpenConns:      pg.MaxOpenConns,
			MinOpenConns:      pg.MinOpenConns,
			MaxConnLifetime:   p.parse("postgres.max_conn_lifetime", pg.MaxConnLifetime),
			MaxConnIdleTime:   p.parse("postgres.max_conn_idle_time", pg.MaxConnIdleTime),
			HealthCheckPeriod: p.parse("postgres.health_check_period", pg.HealthCheckPeriod),
			Schema:            pg.Schema,
			PreparedStmts:     pg.PreparedStatementsEnabled,
			PoolMetrics:       pg.PoolMetricsEnabled,
			Transaction: TransactionConfig{
				DefaultIsolation: pg.Transaction.DefaultIsolation,
				DefaultTimeout:   p.parse("postgres.transaction.default_timeout", pg.Transaction.DefaultTimeout),
				LockTimeout:      p.parse("postgres.transaction.lock_timeout", pg.Transaction.LockTimeout),
				MaxRetries:       pg.Transaction.MaxRetries,
				MetricsEnabled:   pg.Transaction.MetricsEnabled,
			},
		},
		ObjectStore: ObjectStoreConfig{
			Endpoint:        b.Data.ObjectStore.Endpoint,
			AccessKeyID:     b.Data.ObjectStore.AccessKeyID,
			SecretAccessKey: b.Data.ObjectStore.SecretAccessKey,
			Bucket:          b.Data.ObjectStore.Bucket,
			UseSSL:          b.Data.ObjectStore.UseSSL,
		},
		Observability: ObservabilityConfig{
			GlobalAttributes: mapCopy(b.Observability.GlobalAttributes),
			Tracing: TracingConfig{
				Enabled:            b.Observability.Tracing.Enabled,
				Exporter:           b.Observability.Tracing.Exporter,
				Endpoint:           b.Observability.Tracing.Endpoint,
				Headers:            mapCopy(b.Observability.Tracing.Headers),
				Insecure:           b.Observability.Tracing.Insecure,
				SamplingRatio:      b.Observability.Tracing.SamplingRatio,
				BatchTimeout:       p.parse("observability.tracing.batch_timeout", b.Observability.Tracing.BatchTimeout),
				ExportTimeout:      p.parse("observability.tracing.export_timeout", b.Observability.Tracing.ExportTimeout),
				MaxQueueSize:       b.Observability.Tracing.MaxQueueSize,
				MaxExportBatchSize: b.Observability.Tracing.MaxExportBatchSize,
				Required:           b.Observability.Tracing.Required,
				Attributes:         mapCopy(b.Observability.Tracing.Attributes),
			},
			Metrics: MetricsConfig{
				Enabled:             b.Observability.Metrics.Enabled,
				Exporter:            b.Observability.Metrics.Exporter,
				Endpoint:            b.Observability.Metrics.Endpoint,
				Headers:             mapCopy(b.Observability.Metrics.Headers),
				Insecure:            b.Observability.Metrics.Insecure,
				Interval:            p.parse("observability.metrics.interval", b.Observability.Metrics.Interval),
				DisableRuntimeStats: b.Observability.Metrics.DisableRuntimeStats,
				Required:            b.Observability.Metrics.Required,
				ResourceAttributes:  mapCopy(b.Observability.Metrics.ResourceAttributes),
			},
		},
		Messaging: MessagingConfig{
			Schema:  pg.Schema,
			PubSub:  p.pubsub("messaging.pubsub", b.Messaging.PubSub),
			Encoder: p.pubsub("messaging.encoder", b.Messaging.Encoder),
			Outbox: OutboxPublisherConfig{
				BatchSize:      b.Messaging.Outbox.BatchSize,
				TickInterval:   p.parse("messaging.outbox.tick_interval", b.Messaging.Outbox.TickInterval),
				InitialBackoff: p.parse("messaging.outbox.initial_backoff", b.Messaging.Outbox.InitialBackoff),
				MaxBackoff:     p.parse("messaging.outbox.max_backoff", b.Messaging.Outbox.MaxBackoff),
				MaxAttempts:    b.Messaging.Outbox.MaxAttempts,
				PublishTimeout: p.parse("messaging.outbox.publish_timeout", b.Messaging.Outbox.PublishTimeout),
				Workers:        b.Messaging.Outbox.Workers,
				LockTTL:        p.parse("messaging.outbox.lock_ttl", b.Messaging.Outbox.LockTTL),
				LoggingEnabled: b.Messaging.Outbox.LoggingEnabled,
				MetricsEnabled: b.Messaging.Outbox.MetricsEnabled,
			},
			Inbox: InboxConfig{
				SourceService:  b.Messaging.Inbox.SourceService,
				MaxConcurrency: b.Messaging.Inbox.MaxConcurrency,
				LoggingEnabled: b.Messaging.Inbox.LoggingEnabled,
				MetricsEnabled: b.Messaging.Inbox.MetricsEnabled,
			},
		},
	}
	if p.err != nil {
		return RuntimeConfig{}, p.err
	}
	return rc, nil
}

// durationParser 收敛多个字段的时长解析错误，首个错误生效。
type durationParser struct {
	err error
}

func newDurationParser() *durationParser {
	return &durationParser{}
}

func (p *durationParser) parse(field, raw string) time.Duration {
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("parse %s %q: %w", field, raw, err)
	}
	return d
}

func (p *durationParser) pubsub(prefix string, raw pubsubFile) PubSubConfig {
	return PubSubConfig{
		ProjectID:           raw.ProjectID,
		TopicID:             raw.TopicID,
		SubscriptionID:      raw.SubscriptionID,
		OrderingKeyEnabled:  raw.OrderingKeyEnabled,
		LoggingEnabled:      raw.LoggingEnabled,
		MetricsEnabled:      raw.MetricsEnabled,
		EmulatorEndpoint:    raw.EmulatorEndpoint,
		PublishTimeout:      p.parse(prefix+".publish_timeout", raw.PublishTimeout),
		ExactlyOnceDelivery: raw.ExactlyOnceDelivery,
		DeadLetterTopicID:   raw.DeadLetterTopicID,
		Receive: PubSubReceiveConfig{
			NumGoroutines:          raw.Receive.NumGoroutines,
			MaxOutstandingMessages: raw.Receive.MaxOutstandingMessages,
			MaxOutstandingBytes:    raw.Receive.MaxOutstandingBytes,
			MaxExtension:           p.parse(prefix+".receive.max_extension", raw.Receive.MaxExtension),
			MaxExtensionPeriod:     p.parse(prefix+".receive.max_extension_period", raw.Receive.MaxExtensionPeriod),
		},
	}
}

func mapCopy(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func fillDefaults(cfg *RuntimeConfig) {
	if cfg.Database.Schema == "" {
		cfg.Database.Schema = "catalog"
	}
	if cfg.Messaging.Schema == "" {
		cfg.Messaging.Schema = cfg.Database.Schema
	}
	if cfg.ObjectStore.Bucket == "" {
		cfg.ObjectStore.Bucket = "catalog-medias"
	}
}
