package server

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/okian/collections/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServer_Run(t *testing.T) {
	Convey("Given a server on an ephemeral port", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "pong")
		})
		srv := New("test", "127.0.0.1:0", handler, logger.Nop())

		done := make(chan error, 1)
		go func() { done <- srv.Run(ctx) }()

		var addr string
		select {
		case a := <-srv.Started():
			addr = a.String()
		case <-time.After(5 * time.Second):
			t.Fatal("server did not start")
		}

		Convey("When a request is sent", func() {
			resp, err := http.Get("http://" + addr + "/")
			So(err, ShouldBeNil)
			body, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()

			Convey("Then the handler should answer", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(string(body), ShouldEqual, "pong")
			})
		})

		Convey("When the context is cancelled", func() {
			cancel()

			Convey("Then Run should return without error", func() {
				select {
				case err := <-done:
					So(err, ShouldBeNil)
				case <-time.After(5 * time.Second):
					t.Fatal("server did not stop")
				}
			})
		})
	})
}

func TestServer_ListenError(t *testing.T) {
	Convey("Given an invalid address", t, func() {
		srv := New("test", "not-an-address", http.NotFoundHandler(), logger.Nop())

		Convey("Then Run should fail immediately", func() {
			So(srv.Run(context.Background()), ShouldNotBeNil)
		})
	})
}

func TestUpdateSystemMetrics(t *testing.T) {
	Convey("Given the system metrics updater", t, func() {
		So(updateSystemMetrics, ShouldNotPanic)
	})
}
