package mcp

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	recalllogger "github.com/papercomputeco/recall/pkg/logger"
	"github.com/papercomputeco/recall/pkg/store"
	"github.com/papercomputeco/recall/pkg/store/inmemory"
)

var _ = Describe("Insight tools", func() {
	var (
		server *Server
		driver *inmemory.Driver
		ctx    context.Context
	)

	BeforeEach(func() {
		driver = inmemory.NewDriver()

		var err error
		server, err = NewServer(Config{
			Storer: driver,
			Logger: recalllogger.Nop(),
		})
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()
	})

	Describe("handleSave", func() {
		It("persists an insight and returns it with an id", func() {
			result, output, err := server.handleSave(ctx, nil, SaveInput{
				Content:   "found the root cause of the race",
				SessionID: "sess-1",
				Repo:      "github.com/acme/widgets",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsError).To(BeFalse())
			Expect(output.Message.ID).To(BeNumerically(">", 0))
			Expect(output.Message.Content).To(Equal("found the root cause of the race"))
		})

		It("defaults the type to insight", func() {
			_, output, err := server.handleSave(ctx, nil, SaveInput{Content: "a note"})
			Expect(err).NotTo(HaveOccurred())
			Expect(output.Message.Type).To(Equal("insight"))
		})

		It("keeps an explicit type", func() {
			_, output, err := server.handleSave(ctx, nil, SaveInput{
				Type:    "decision",
				Content: "we will use sqlite",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(output.Message.Type).To(Equal("decision"))
		})

		It("rejects empty content", func() {
			result, _, err := server.handleSave(ctx, nil, SaveInput{})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsError).To(BeTrue())
		})
	})

	Describe("handleRecall", func() {
		BeforeEach(func() {
			for _, content := range []string{"first", "second", "third"} {
				_, err := driver.Create(ctx, store.Message{Type: "insight", Content: content})
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("returns messages newest first", func() {
			_, output, err := server.handleRecall(ctx, nil, RecallInput{})
			Expect(err).NotTo(HaveOccurred())
			Expect(output.Count).To(Equal(3))
			Expect(output.Messages[0].Content).To(Equal("third"))
			Expect(output.Messages[2].Content).To(Equal("first"))
		})

		It("respects the limit", func() {
			_, output, err := server.handleRecall(ctx, nil, RecallInput{Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(output.Count).To(Equal(2))
		})

		It("renders a context block", func() {
			_, output, err := server.handleRecall(ctx, nil, RecallInput{})
			Expect(err).NotTo(HaveOccurred())
			Expect(output.Context).To(ContainSubstring("(insight) third"))
		})

		It("returns an empty context block when the store is empty", func() {
			_, err := driver.Clear(ctx)
			Expect(err).NotTo(HaveOccurred())

			_, output, err := server.handleRecall(ctx, nil, RecallInput{})
			Expect(err).NotTo(HaveOccurred())
			Expect(output.Count).To(Equal(0))
			Expect(output.Context).To(BeEmpty())
		})
	})

	Describe("handleForget", func() {
		It("deletes a stored insight", func() {
			created, err := driver.Create(ctx, store.Message{Content: "ephemeral"})
			Expect(err).NotTo(HaveOccurred())

			_, output, err := server.handleForget(ctx, nil, ForgetInput{ID: created.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(output.Deleted).To(BeTrue())
			Expect(output.ID).To(Equal(created.ID))
		})

		It("reports deleted=false for an unknown id", func() {
			result, output, err := server.handleForget(ctx, nil, ForgetInput{ID: 42})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsError).To(BeFalse())
			Expect(output.Deleted).To(BeFalse())
		})

		It("rejects a non-positive id", func() {
			result, _, err := server.handleForget(ctx, nil, ForgetInput{ID: 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.IsError).To(BeTrue())
		})
	})
})
