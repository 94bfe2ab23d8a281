package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/John-Robertt/policygen-go/internal/classify"
	"github.com/John-Robertt/policygen-go/internal/feature"
	"github.com/John-Robertt/policygen-go/internal/geoip"
	"github.com/John-Robertt/policygen-go/internal/httpapi"
)

func main() {
	listen := flag.String("listen", "127.0.0.1:25500", "HTTP 监听地址")
	readHeaderTimeout := flag.Duration("read-header-timeout", 5*time.Second, "HTTP ReadHeaderTimeout（请求头读取超时）")
	shutdownTimeout := flag.Duration("shutdown-timeout", 10*time.Second, "收到退出信号后的优雅退出等待时间")
	maxBody := flag.Int64("max-body", 8<<20, "POST /api/generate 请求体大小上限（字节）")
	in := flag.String("in", "", "订阅内容文件（- 表示标准输入）；非空时进入一次性生成模式")
	out := flag.String("out", "", "一次性生成模式的输出文件；空则写到标准输出")
	mmdb := flag.String("mmdb", "", "GeoIP 国家库路径（可选，用于名称无法识别的节点）")
	flag.Parse()

	if flag.Arg(0) == "healthcheck" {
		u, err := deriveHealthzURL(*listen)
		if err != nil {
			log.Fatal(err)
		}
		if err := runHealthcheck(u, 3*time.Second); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *in != "" {
		var lookup classify.Lookup
		if *mmdb != "" {
			r, err := geoip.Open(*mmdb)
			if err != nil {
				log.Fatal(err)
			}
			defer func() { _ = r.Close() }()
			lookup = r
		}
		if err := runFile(*in, *out, lookup); err != nil {
			log.Fatal(err)
		}
		return
	}

	// Serve mode: the HTTP layer opens the resolver from MMDBPath itself.
	srv := &http.Server{
		Addr: *listen,
		Handler: httpapi.NewHandlerWithOptions(httpapi.Options{
			MaxBodyBytes: *maxBody,
			MMDBPath:     *mmdb,
		}, nil),
		ReadHeaderTimeout: *readHeaderTimeout,
	}

	log.Printf("listening on http://%s", *listen)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Printf("shutdown signal received")

		shCtx, cancel := context.WithTimeout(context.Background(), *shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			log.Printf("graceful shutdown failed: %v", err)
			_ = srv.Close()
		}

		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}
}

// runFile is the one-shot mode: read the payload, resolve flags from
// POLICYGEN_* environment variables, write the document.
func runFile(in, out string, lookup classify.Lookup) error {
	var payload []byte
	var err error
	if in == "-" {
		payload, err = io.ReadAll(os.Stdin)
	} else {
		payload, err = os.ReadFile(in)
	}
	if err != nil {
		return err
	}

	doc, err := httpapi.Generate(string(payload), feature.FromEnv(), lookup)
	if err != nil {
		return err
	}

	if out == "" {
		_, err = os.Stdout.Write(doc)
		return err
	}
	return os.WriteFile(out, doc, 0o644)
}

// deriveHealthzURL normalizes a listen address into the local healthz URL,
// so `policygen-go healthcheck` works as a container health probe.
func deriveHealthzURL(listen string) (string, error) {
	s := strings.TrimSpace(listen)
	if s == "" {
		return "", errors.New("empty listen address")
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		u, err := url.Parse(s)
		if err != nil {
			return "", err
		}
		u.Path = "/healthz"
		return u.String(), nil
	}

	host, port := "127.0.0.1", ""
	switch {
	case strings.Contains(s, ":"):
		h, p, ok := strings.Cut(s, ":")
		if !ok {
			return "", fmt.Errorf("invalid listen address: %q", listen)
		}
		if h != "" && h != "0.0.0.0" && h != "::" {
			host = h
		}
		port = p
	default:
		port = s
	}
	if port == "" {
		return "", fmt.Errorf("invalid listen address: %q", listen)
	}
	return fmt.Sprintf("http://%s:%s/healthz", host, port), nil
}

func runHealthcheck(healthzURL string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthzURL, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return nil
}
