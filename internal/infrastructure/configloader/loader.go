package configloader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/joho/godotenv"
)

// Params 控制配置加载的输入参数。
type Params struct {
	ConfPath string
}

const (
	defaultConfPath        = "configs/config.yaml"
	envConfPath            = "CONF_PATH"
	envDatabaseURL         = "DATABASE_URL"
	envObjectStoreEndpoint = "OBJECT_STORE_ENDPOINT"
	envObjectStoreAccess   = "OBJECT_STORE_ACCESS_KEY"
	envObjectStoreSecret   = "OBJECT_STORE_SECRET_KEY"
	envServiceName         = "SERVICE_NAME"
	envServiceVersion      = "SERVICE_VERSION"
	envEnvironment         = "APP_ENV"
	defaultServiceName     = "lingo-services-media"
	defaultServiceVersion  = "dev"
	defaultEnvironment     = "development"
)

// Load 解析配置文件并返回归一化的 RuntimeConfig。
func Load(params Params) (RuntimeConfig, error) {
	confPath := resolveConfPath(params.ConfPath)
	if err := loadEnvFiles(confPath); err != nil {
		return RuntimeConfig{}, fmt.Errorf("load env files: %w", err)
	}

	bootstrap, err := loadBootstrap(confPath)
	if err != nil {
		return RuntimeConfig{}, err
	}
	applyEnvOverrides(bootstrap)

	runtime, err := fromFile(bootstrap)
	if err != nil {
		return RuntimeConfig{}, err
	}
	runtime.Service = buildServiceInfo()
	fillDefaults(&runtime)

	if runtime.Database.DSN == "" {
		return RuntimeConfig{}, fmt.Errorf("config %q: postgres dsn is required", confPath)
	}
	return runtime, nil
}

func resolveConfPath(explicit string) string {
	switch {
	case explicit != "":
		return explicit
	case os.Getenv(envConfPath) != "":
		return os.Getenv(envConfPath)
	default:
		return defaultConfPath
	}
}

func loadEnvFiles(confPath string) error {
	dirs := candidateDirs(confPath)
	var files []string
	seen := map[string]struct{}{}
	for _, dir := range dirs {
		for _, name := range []string{".env.local", ".env"} {
			fp := filepath.Join(dir, name)
			if _, err := os.Stat(fp); err != nil {
				continue
			}
			if _, ok := seen[fp]; ok {
				continue
			}
			files = append(files, fp)
			seen[fp] = struct{}{}
		}
	}
	if len(files) == 0 {
		return nil
	}
	return godotenv.Overload(files...)
}

func candidateDirs(confPath string) []string {
	var dirs []string
	add := func(path string) {
		if path == "" {
			return
		}
		clean := filepath.Clean(path)
		for _, exist := range dirs {
			if exist == clean {
				return
			}
		}
		dirs = append(dirs, clean)
	}

	if info, err := os.Stat(confPath); err == nil {
		if info.IsDir() {
			add(confPath)
		} else {
			add(filepath.Dir(confPath))
		}
	}

	if cwd, err := os.Getwd(); err == nil {
		add(cwd)
	}
	return dirs
}

func loadBootstrap(confPath string) (*bootstrapFile, error) {
	c := config.New(config.WithSource(file.NewSource(confPath)))
	if err := c.Load(); err != nil {
		return nil, fmt.Errorf("load config %q: %w", confPath, err)
	}
	defer c.Close()

	var bootstrap bootstrapFile
	if err := c.Scan(&bootstrap); err != nil {
		return nil, fmt.Errorf("scan config %q: %w", confPath, err)
	}
	return &bootstrap, nil
}

func buildServiceInfo() ServiceInfo {
	name := firstNonEmpty(os.Getenv(envServiceName), defaultServiceName)
	version := firstNonEmpty(os.Getenv(envServiceVersion), defaultServiceVersion)
	env := resolveEnvironment(os.Getenv(envEnvironment))
	instance := hostnameOrDefault()

	return ServiceInfo{
		Name:        name,
		Version:     version,
		Environment: env,
		InstanceID:  instance,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func resolveEnvironment(raw string) string {
	if raw == "" {
		return defaultEnvironment
	}
	switch raw {
	case "dev", "development":
		return defaultEnvironment
	case "staging":
		return "staging"
	case "prod", "production":
		return "production"
	default:
		return raw
	}
}

func hostnameOrDefault() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "unknown-instance"
	}
	return host
}

func applyEnvOverrides(b *bootstrapFile) {
	if b == nil {
		return
	}
	if dsn := os.Getenv(envDatabaseURL); dsn != "" {
		b.Data.Postgres.DSN = dsn
	}
	if endpoint := os.Getenv(envObjectStoreEndpoint); endpoint != "" {
		b.Data.ObjectStore.Endpoint = endpoint
	}
	if access := os.Getenv(envObjectStoreAccess); access != "" {
		b.Data.ObjectStore.AccessKeyID = access
	}
	if secret := os.Getenv(envObjectStoreSecret); secret != "" {
		b.Data.ObjectStore.SecretAccessKey = secret
	}
}
