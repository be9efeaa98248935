package padelfip

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/openpadel/padel-tracker/internal/platform/logging"
	"github.com/openpadel/padel-tracker/internal/usecase"
)

func TestClient_FetchHTML(t *testing.T) {
	t.Run("sends browser user agent", func(t *testing.T) {
		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte("<html></html>"))
		}))
		defer srv.Close()

		c := NewClient(ClientConfig{BaseURL: srv.URL, Logger: logging.NewNop()})
		body, err := c.FetchHTML(context.Background(), srv.URL+"/page")
		if err != nil {
			t.Fatalf("FetchHTML: %v", err)
		}
		if body != "<html></html>" {
			t.Fatalf("body = %q", body)
		}
		if gotUA != BrowserUserAgent {
			t.Fatalf("user agent = %q, want pinned browser identity", gotUA)
		}
	})

	t.Run("non-2xx is a fetch failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		c := NewClient(ClientConfig{BaseURL: srv.URL, Logger: logging.NewNop()})
		_, err := c.FetchHTML(context.Background(), srv.URL+"/blocked")
		if err == nil {
			t.Fatal("expected error on 403")
		}
		if !crerr.Is(err, usecase.ErrFetch) {
			t.Fatalf("error %v is not fetch-marked", err)
		}
	})

	t.Run("concurrent callers share one request", func(t *testing.T) {
		var calls int32
		started := make(chan struct{}, 16)
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			started <- struct{}{}
			<-release
			_, _ = w.Write([]byte("shared"))
		}))
		defer srv.Close()

		c := NewClient(ClientConfig{BaseURL: srv.URL, Logger: logging.NewNop()})
		fetch := func(wg *sync.WaitGroup) {
			defer wg.Done()
			body, err := c.FetchHTML(context.Background(), srv.URL+"/same")
			if err != nil || body != "shared" {
				t.Errorf("FetchHTML: body=%q err=%v", body, err)
			}
		}

		var wg sync.WaitGroup
		wg.Add(1)
		go fetch(&wg)
		// Once the origin has the first request, every further caller joins
		// the in-flight one.
		<-started
		for i := 0; i < 7; i++ {
			wg.Add(1)
			go fetch(&wg)
		}
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		if got := atomic.LoadInt32(&calls); got != 1 {
			t.Fatalf("origin saw %d requests, want 1", got)
		}
	})
}

func TestClient_ProbeURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s, want HEAD", r.Method)
		}
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, Logger: logging.NewNop()})

	exists, err := c.ProbeURL(context.Background(), srv.URL+"/present")
	if err != nil || !exists {
		t.Fatalf("probe present: exists=%v err=%v", exists, err)
	}

	exists, err = c.ProbeURL(context.Background(), srv.URL+"/missing")
	if err != nil {
		t.Fatalf("404 must not be an error: %v", err)
	}
	if exists {
		t.Fatal("expected missing page to report false")
	}
}
