package main

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/address-resolver/app/config"
	"github.com/address-resolver/app/requests"
	"github.com/address-resolver/app/services"
	"github.com/address-resolver/internal/gazetteer"
	"github.com/address-resolver/internal/normalizer"
	"github.com/address-resolver/internal/resolver"
	"github.com/address-resolver/internal/suggest"
	"go.uber.org/zap"
)

// Worker resolve địa chỉ hàng loạt từ file: mỗi dòng input là một địa chỉ raw,
// output là NDJSON (một kết quả mỗi dòng), hỗ trợ nén gzip.
func main() {
	inputPath := flag.String("input", "", "file input, mỗi dòng một địa chỉ")
	outputPath := flag.String("output", "", "file output NDJSON (mặc định stdout)")
	gzipOutput := flag.Bool("gzip", false, "nén output bằng gzip")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(configPath())
	if err != nil {
		panic(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if *inputPath == "" {
		logger.Fatal("Thiếu flag -input")
	}

	logger.Info("Starting Address Resolver Worker...",
		zap.String("input", *inputPath),
		zap.String("output", *outputPath))

	gaz, err := gazetteer.LoadFile(cfg.GazetteerPath)
	if err != nil {
		logger.Fatal("Không load được gazetteer", zap.Error(err))
	}

	rules, err := normalizer.DefaultRules()
	if err != nil {
		logger.Fatal("Không load được rules chuẩn hóa", zap.Error(err))
	}
	textNormalizer, err := normalizer.NewTextNormalizer(rules)
	if err != nil {
		logger.Fatal("Không tạo được normalizer", zap.Error(err))
	}

	cache, err := services.NewLRUCacheService(cfg.CacheSize, logger)
	if err != nil {
		logger.Fatal("Không tạo được cache", zap.Error(err))
	}
	defer cache.Close()

	resolveService := services.NewResolveService(
		textNormalizer,
		resolver.New(gaz, logger),
		gaz,
		cache,
		suggest.NewFuzzySuggester(gaz, logger),
		logger,
	)

	in, err := os.Open(*inputPath)
	if err != nil {
		logger.Fatal("Không mở được file input", zap.Error(err))
	}
	defer in.Close()

	out, closeOut, err := openOutput(*outputPath, *gzipOutput)
	if err != nil {
		logger.Fatal("Không mở được output", zap.Error(err))
	}
	defer closeOut()

	start := time.Now()
	processed, failed := run(resolveService, in, out, logger)

	logger.Info("Worker exited",
		zap.Int("processed", processed),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)))
}

// run đọc từng dòng, resolve và ghi kết quả NDJSON
func run(rs *services.ResolveService, in io.Reader, out io.Writer, logger *zap.Logger) (processed, failed int) {
	options := requests.ResolveOptions{UseCache: true}
	encoder := json.NewEncoder(out)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		address := strings.TrimSpace(scanner.Text())
		if address == "" {
			continue
		}

		result, _, err := rs.ResolveAddress(context.Background(), address, options)
		if err != nil {
			logger.Warn("Lỗi resolve địa chỉ", zap.String("address", address), zap.Error(err))
			failed++
			continue
		}
		if err := encoder.Encode(result); err != nil {
			logger.Fatal("Lỗi ghi output", zap.Error(err))
		}
		processed++
	}
	if err := scanner.Err(); err != nil {
		logger.Fatal("Lỗi đọc file input", zap.Error(err))
	}
	return processed, failed
}

// openOutput mở writer cho output, bọc gzip nếu cần
func openOutput(path string, gzipEnabled bool) (io.Writer, func(), error) {
	var w io.Writer = os.Stdout
	closers := []io.Closer{}

	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, f)
		w = f
	}

	if gzipEnabled {
		gz := gzip.NewWriter(w)
		closers = append([]io.Closer{gz}, closers...)
		w = gz
	}

	closeAll := func() {
		for _, c := range closers {
			c.Close()
		}
	}
	return w, closeAll, nil
}

func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config/config.yaml"
}
