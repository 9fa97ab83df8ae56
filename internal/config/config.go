package config

import (
	"os"
	"path/filepath"
)

// ChromeUserAgent is sent on proxied thumbnail fetches so Google CDNs treat
// them as browser traffic.
const ChromeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

type Config struct {
	Addr      string
	DataDir   string
	DBPath    string
	StaticDir string
	LogLevel  string

	// JWTSecret signs session tokens. Empty means a random secret is
	// generated at startup (sessions do not survive restarts).
	JWTSecret string

	// External binaries used by the download pipeline.
	YtDlpPath  string
	FfmpegPath string

	// TmpDir holds in-flight download files and the cookies file.
	TmpDir string

	// CookiesB64 is an optional base64-encoded Netscape cookies file
	// passed to yt-dlp.
	CookiesB64 string

	// ProxyURL routes outbound thumbnail fetches when set.
	ProxyURL string
}

func Load() Config {
	addr := getenv("TUBEFETCH_ADDR", ":8080")
	dataDir := getenv("TUBEFETCH_DATA_DIR", "data")
	dbPath := os.Getenv("TUBEFETCH_DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "tubefetch.db")
	}
	tmpDir := getenv("TUBEFETCH_TMP_DIR", os.TempDir())

	return Config{
		Addr:       addr,
		DataDir:    dataDir,
		DBPath:     filepath.Clean(dbPath),
		StaticDir:  os.Getenv("TUBEFETCH_STATIC_DIR"),
		LogLevel:   getenv("TUBEFETCH_LOG_LEVEL", "info"),
		JWTSecret:  os.Getenv("TUBEFETCH_JWT_SECRET"),
		YtDlpPath:  getenv("TUBEFETCH_YTDLP_PATH", "yt-dlp"),
		FfmpegPath: getenv("TUBEFETCH_FFMPEG_PATH", "ffmpeg"),
		TmpDir:     filepath.Clean(tmpDir),
		CookiesB64: os.Getenv("TUBEFETCH_COOKIES"),
		ProxyURL:   os.Getenv("TUBEFETCH_PROXY_URL"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
