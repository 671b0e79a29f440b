package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/recall/pkg/client"
	"github.com/papercomputeco/recall/pkg/store"
)

var _ = Describe("Client", func() {
	var (
		server *httptest.Server
		ctx    context.Context
	)

	AfterEach(func() {
		if server != nil {
			server.Close()
		}
	})

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("Post", func() {
		It("sends the message and returns the persisted copy", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPost))
				Expect(r.URL.Path).To(Equal("/messages"))

				var msg store.Message
				Expect(json.NewDecoder(r.Body).Decode(&msg)).To(Succeed())
				Expect(msg.Content).To(Equal("found it"))

				msg.ID = 12
				w.WriteHeader(http.StatusCreated)
				Expect(json.NewEncoder(w).Encode(msg)).To(Succeed())
			}))

			c := client.New(server.URL)
			created, err := c.Post(ctx, store.Message{Type: "insight", Content: "found it"})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(Equal(int64(12)))
		})

		It("surfaces the server's error message", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"invalid content: must not be empty"}`))
			}))

			c := client.New(server.URL)
			_, err := c.Post(ctx, store.Message{})
			Expect(err).To(MatchError(ContainSubstring("must not be empty")))
		})

		It("fails fast when the server is unreachable", func() {
			c := client.New("http://127.0.0.1:1")
			_, err := c.Post(ctx, store.Message{Content: "x"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Recent", func() {
		It("decodes the enveloped shape", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Query().Get("limit")).To(Equal("5"))
				_, _ = w.Write([]byte(`{"messages":[{"id":2,"content":"b"},{"id":1,"content":"a"}],"count":2}`))
			}))

			c := client.New(server.URL)
			msgs, err := c.Recent(ctx, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(msgs).To(HaveLen(2))
			Expect(msgs[0].ID).To(Equal(int64(2)))
		})

		It("decodes a bare JSON array", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`[{"id":3,"content":"c"}]`))
			}))

			c := client.New(server.URL)
			msgs, err := c.Recent(ctx, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(msgs).To(HaveLen(1))
			Expect(msgs[0].Content).To(Equal("c"))
		})
	})

	Describe("Delete", func() {
		It("targets the message path", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodDelete))
				Expect(r.URL.Path).To(Equal("/messages/9"))
				_, _ = w.Write([]byte(`{"deleted":true,"id":9}`))
			}))

			c := client.New(server.URL)
			Expect(c.Delete(ctx, 9)).To(Succeed())
		})
	})

	Describe("Clear", func() {
		It("returns the removed count", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodDelete))
				Expect(r.URL.Path).To(Equal("/messages"))
				_, _ = w.Write([]byte(`{"deleted_count":4}`))
			}))

			c := client.New(server.URL)
			count, err := c.Clear(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(4)))
		})
	})

	Describe("Ping", func() {
		It("succeeds on 200", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.URL.Path).To(Equal("/ping"))
				_, _ = w.Write([]byte(`"pong"`))
			}))

			c := client.New(server.URL)
			Expect(c.Ping(ctx)).To(Succeed())
		})
	})
})
