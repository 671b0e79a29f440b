package inmemory_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/recall/pkg/store"
	"github.com/papercomputeco/recall/pkg/store/inmemory"
)

var _ = Describe("Driver", func() {
	var (
		driver *inmemory.Driver
		ctx    context.Context
	)

	BeforeEach(func() {
		driver = inmemory.NewDriver()
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("assigns a fresh ID and returns the persisted message", func() {
			msg, err := driver.Create(ctx, store.Message{Type: "insight", Content: "found it"})
			Expect(err).NotTo(HaveOccurred())
			Expect(msg.ID).To(Equal(int64(1)))
			Expect(msg.Content).To(Equal("found it"))
		})

		It("assigns monotonically increasing IDs", func() {
			first, err := driver.Create(ctx, store.Message{Content: "a"})
			Expect(err).NotTo(HaveOccurred())
			second, err := driver.Create(ctx, store.Message{Content: "b"})
			Expect(err).NotTo(HaveOccurred())
			Expect(second.ID).To(BeNumerically(">", first.ID))
		})

		It("fills timestamp and session_id defaults", func() {
			msg, err := driver.Create(ctx, store.Message{Content: "x"})
			Expect(err).NotTo(HaveOccurred())
			Expect(msg.Timestamp).NotTo(BeEmpty())
			Expect(msg.SessionID).To(Equal(store.DefaultSessionID))
		})

		It("preserves a producer-supplied timestamp", func() {
			msg, err := driver.Create(ctx, store.Message{
				Content:   "x",
				Timestamp: "2024-01-01T00:00:00Z",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(msg.Timestamp).To(Equal("2024-01-01T00:00:00Z"))
		})

		It("rejects empty content without changing state", func() {
			_, err := driver.Create(ctx, store.Message{Type: "insight"})
			Expect(err).To(HaveOccurred())

			var verr store.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())

			msgs, err := driver.List(ctx, 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(msgs).To(BeEmpty())
		})

		It("does not reuse IDs after deletion", func() {
			first, err := driver.Create(ctx, store.Message{Content: "a"})
			Expect(err).NotTo(HaveOccurred())

			_, err = driver.Delete(ctx, first.ID)
			Expect(err).NotTo(HaveOccurred())

			second, err := driver.Create(ctx, store.Message{Content: "b"})
			Expect(err).NotTo(HaveOccurred())
			Expect(second.ID).To(BeNumerically(">", first.ID))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			for i := range 30 {
				_, err := driver.Create(ctx, store.Message{Content: fmt.Sprintf("message %d", i)})
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("returns the newest message first", func() {
			msgs, err := driver.List(ctx, 1, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(msgs).To(HaveLen(1))
			Expect(msgs[0].Content).To(Equal("message 29"))
		})

		It("respects the limit", func() {
			msgs, err := driver.List(ctx, 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(msgs).To(HaveLen(20))
			Expect(msgs[0].Content).To(Equal("message 29"))
			Expect(msgs[19].Content).To(Equal("message 10"))
		})

		It("respects the offset", func() {
			msgs, err := driver.List(ctx, 5, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(msgs).To(HaveLen(5))
			Expect(msgs[0].Content).To(Equal("message 19"))
		})

		It("rejects a non-positive limit", func() {
			_, err := driver.List(ctx, 0, 0)
			Expect(err).To(HaveOccurred())

			var verr store.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		It("reports true for an existing row and false on repeat", func() {
			msg, err := driver.Create(ctx, store.Message{Content: "x"})
			Expect(err).NotTo(HaveOccurred())

			deleted, err := driver.Delete(ctx, msg.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())

			deleted, err = driver.Delete(ctx, msg.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeFalse())

			msgs, err := driver.List(ctx, 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(msgs).To(BeEmpty())
		})

		It("reports false for an unknown ID", func() {
			deleted, err := driver.Delete(ctx, 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeFalse())
		})
	})

	Describe("Clear", func() {
		It("removes everything and returns the prior row count", func() {
			for range 3 {
				_, err := driver.Create(ctx, store.Message{Content: "x"})
				Expect(err).NotTo(HaveOccurred())
			}

			count, err := driver.Clear(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(3)))

			msgs, err := driver.List(ctx, 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(msgs).To(BeEmpty())
		})

		It("returns zero on an empty store", func() {
			count, err := driver.Clear(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})
})
