package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/pharmacrawl/pkg/e"
	"github.com/DRSN-tech/pharmacrawl/pkg/logger"
	"github.com/jimlawless/whereami"
)

type Config struct {
	Db      *PGDBCfg
	Catalog *CatalogCfg
	Gateway *GatewayCfg
	Images  *ImagesCfg
	Minio   *MinIOCfg
}

type CatalogCfg struct {
	BaseURL         string // Адрес каталога без завершающего слэша
	Letters         string // Буквы категорий, которые обходит полный прогон
	MinLinksPerPage int    // Порог, ниже которого включается запасная стратегия поиска ссылок
}

type GatewayCfg struct {
	CategoryDelayMin time.Duration
	CategoryDelayMax time.Duration
	ItemDelayMin     time.Duration
	ItemDelayMax     time.Duration
	ImageDelayMin    time.Duration
	ImageDelayMax    time.Duration
	MaxRetries       int
	RequestTimeout   time.Duration
	UserAgents       []string // Пустой список означает встроенный набор
}

// Поддерживаемые бэкенды хранилища изображений.
const (
	ImagesBackendFS    = "fs"
	ImagesBackendMinIO = "minio"
)

type ImagesCfg struct {
	Backend  string // ImagesBackendFS или ImagesBackendMinIO
	Dir      string // Каталог для backend=fs
	MaxBytes int64  // Лимит на размер одного изображения
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type MinIOCfg struct {
	MinioEndpoint     string // Адрес конечной точки Minio
	BucketName        string // Название конкретного бакета в Minio
	MinioRootUser     string // Имя пользователя для доступа к Minio
	MinioRootPassword string // Пароль для доступа к Minio
	MinioUseSSL       bool
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	db, err := loadPGDBCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	catalog, err := loadCatalogCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	gateway, err := loadGatewayCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	images, err := loadImagesCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Db:      db,
		Catalog: catalog,
		Gateway: gateway,
		Images:  images,
		Minio:   minio,
	}, nil
}

func loadCatalogCfg(log logger.Logger) (*CatalogCfg, error) {
	const (
		defaultBaseURL         = "https://dawaai.pk"
		defaultLetters         = "abcdefghijklmnopqrstuvwxyz"
		defaultMinLinksPerPage = 10
	)

	minLinks, err := parseIntEnv("DISCOVERY_MIN_LINKS", defaultMinLinksPerPage)
	if err != nil {
		log.Errorf(err, "invalid DISCOVERY_MIN_LINKS")
		return nil, err
	}

	return &CatalogCfg{
		BaseURL:         strings.TrimRight(getEnvOrDefault("CATALOG_BASE_URL", defaultBaseURL), "/"),
		Letters:         strings.ToLower(getEnvOrDefault("CATALOG_LETTERS", defaultLetters)),
		MinLinksPerPage: minLinks,
	}, nil
}

func loadGatewayCfg(log logger.Logger) (*GatewayCfg, error) {
	const (
		defaultCategoryDelayMin = 5 * time.Second
		defaultCategoryDelayMax = 10 * time.Second
		defaultItemDelayMin     = 2 * time.Second
		defaultItemDelayMax     = 5 * time.Second
		defaultImageDelayMin    = 500 * time.Millisecond
		defaultImageDelayMax    = 2 * time.Second
		defaultMaxRetries       = 3
		defaultRequestTimeout   = 30 * time.Second
	)

	categoryMin, err := parseDurationEnv("GATEWAY_CATEGORY_DELAY_MIN", defaultCategoryDelayMin)
	if err != nil {
		log.Errorf(err, "invalid GATEWAY_CATEGORY_DELAY_MIN")
		return nil, err
	}

	categoryMax, err := parseDurationEnv("GATEWAY_CATEGORY_DELAY_MAX", defaultCategoryDelayMax)
	if err != nil {
		log.Errorf(err, "invalid GATEWAY_CATEGORY_DELAY_MAX")
		return nil, err
	}

	itemMin, err := parseDurationEnv("GATEWAY_ITEM_DELAY_MIN", defaultItemDelayMin)
	if err != nil {
		log.Errorf(err, "invalid GATEWAY_ITEM_DELAY_MIN")
		return nil, err
	}

	itemMax, err := parseDurationEnv("GATEWAY_ITEM_DELAY_MAX", defaultItemDelayMax)
	if err != nil {
		log.Errorf(err, "invalid GATEWAY_ITEM_DELAY_MAX")
		return nil, err
	}

	imageMin, err := parseDurationEnv("GATEWAY_IMAGE_DELAY_MIN", defaultImageDelayMin)
	if err != nil {
		log.Errorf(err, "invalid GATEWAY_IMAGE_DELAY_MIN")
		return nil, err
	}

	imageMax, err := parseDurationEnv("GATEWAY_IMAGE_DELAY_MAX", defaultImageDelayMax)
	if err != nil {
		log.Errorf(err, "invalid GATEWAY_IMAGE_DELAY_MAX")
		return nil, err
	}

	for _, band := range []struct {
		name     string
		min, max time.Duration
	}{
		{"GATEWAY_CATEGORY_DELAY", categoryMin, categoryMax},
		{"GATEWAY_ITEM_DELAY", itemMin, itemMax},
		{"GATEWAY_IMAGE_DELAY", imageMin, imageMax},
	} {
		if band.min > band.max {
			err := fmt.Errorf("%s_MIN exceeds %s_MAX", band.name, band.name)
			log.Errorf(err, "invalid delay band")
			return nil, err
		}
	}

	maxRetries, err := parseIntEnv("GATEWAY_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid GATEWAY_MAX_RETRIES")
		return nil, err
	}

	requestTimeout, err := parseDurationEnv("GATEWAY_REQUEST_TIMEOUT", defaultRequestTimeout)
	if err != nil {
		log.Errorf(err, "invalid GATEWAY_REQUEST_TIMEOUT")
		return nil, err
	}

	return &GatewayCfg{
		CategoryDelayMin: categoryMin,
		CategoryDelayMax: categoryMax,
		ItemDelayMin:     itemMin,
		ItemDelayMax:     itemMax,
		ImageDelayMin:    imageMin,
		ImageDelayMax:    imageMax,
		MaxRetries:       maxRetries,
		RequestTimeout:   requestTimeout,
		UserAgents:       splitCSV(getEnv("GATEWAY_USER_AGENTS")),
	}, nil
}

func loadImagesCfg(log logger.Logger) (*ImagesCfg, error) {
	const (
		defaultDir      = "data/images"
		defaultMaxBytes = 10 << 20
	)

	backend := strings.ToLower(getEnvOrDefault("IMAGES_BACKEND", ImagesBackendFS))
	if backend != ImagesBackendFS && backend != ImagesBackendMinIO {
		err := fmt.Errorf("IMAGES_BACKEND must be fs or minio, got %q", backend)
		log.Errorf(err, "invalid IMAGES_BACKEND")
		return nil, err
	}

	maxBytes, err := parseIntEnv("IMAGES_MAX_BYTES", defaultMaxBytes)
	if err != nil {
		log.Errorf(err, "invalid IMAGES_MAX_BYTES")
		return nil, err
	}

	return &ImagesCfg{
		Backend:  backend,
		Dir:      getEnvOrDefault("IMAGES_DIR", defaultDir),
		MaxBytes: int64(maxBytes),
	}, nil
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
	}, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL   = false
		defaultEndpoint = "minio:9000"
	)

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	return &MinIOCfg{
		MinioEndpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:        getEnv("BUCKET_NAME"),
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}

	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
