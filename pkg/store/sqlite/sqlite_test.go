package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/recall/pkg/store"
	"github.com/papercomputeco/recall/pkg/store/sqlite"
)

var _ = Describe("Driver", func() {
	var (
		driver *sqlite.Driver
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		driver, err = sqlite.NewDriver(":memory:")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if driver != nil {
			driver.Close()
		}
	})

	Describe("NewDriver", func() {
		It("creates a driver with a file database", func() {
			tmpDir := GinkgoT().TempDir()
			dbPath := filepath.Join(tmpDir, "test.db")

			d, err := sqlite.NewDriver(dbPath)
			Expect(err).NotTo(HaveOccurred())
			defer d.Close()

			// Verify file was created
			_, err = os.Stat(dbPath)
			Expect(err).NotTo(HaveOccurred())
		})

		It("persists messages across reopen", func() {
			tmpDir := GinkgoT().TempDir()
			dbPath := filepath.Join(tmpDir, "test.db")

			d, err := sqlite.NewDriver(dbPath)
			Expect(err).NotTo(HaveOccurred())

			created, err := d.Create(ctx, store.Message{Type: "decision", Content: "keep sqlite"})
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Close()).To(Succeed())

			reopened, err := sqlite.NewDriver(dbPath)
			Expect(err).NotTo(HaveOccurred())
			defer reopened.Close()

			msgs, err := reopened.List(ctx, 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(msgs).To(HaveLen(1))
			Expect(msgs[0].ID).To(Equal(created.ID))
			Expect(msgs[0].Content).To(Equal("keep sqlite"))
		})
	})

	Describe("Create", func() {
		It("assigns fresh, increasing IDs", func() {
			first, err := driver.Create(ctx, store.Message{Content: "a"})
			Expect(err).NotTo(HaveOccurred())
			second, err := driver.Create(ctx, store.Message{Content: "b"})
			Expect(err).NotTo(HaveOccurred())
			Expect(second.ID).To(BeNumerically(">", first.ID))
		})

		It("stores all fields verbatim", func() {
			created, err := driver.Create(ctx, store.Message{
				Type:      "observation",
				Content:   "tests pass in CI but not locally",
				Timestamp: "2024-06-01T12:00:00Z",
				SessionID: "abc-123",
				Repo:      "github.com/papercomputeco/recall",
			})
			Expect(err).NotTo(HaveOccurred())

			msgs, err := driver.List(ctx, 1, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(msgs).To(HaveLen(1))
			Expect(msgs[0]).To(Equal(&store.Message{
				ID:        created.ID,
				Type:      "observation",
				Content:   "tests pass in CI but not locally",
				Timestamp: "2024-06-01T12:00:00Z",
				SessionID: "abc-123",
				Repo:      "github.com/papercomputeco/recall",
			}))
		})

		It("leaves type open rather than validating a vocabulary", func() {
			created, err := driver.Create(ctx, store.Message{Type: "hunch", Content: "x"})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Type).To(Equal("hunch"))
		})

		It("rejects empty content without inserting a row", func() {
			_, err := driver.Create(ctx, store.Message{})
			var verr store.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())

			msgs, err := driver.List(ctx, 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(msgs).To(BeEmpty())
		})

		It("does not corrupt long content", func() {
			long := ""
			for range 500 {
				long += "0123456789"
			}

			created, err := driver.Create(ctx, store.Message{Content: long})
			Expect(err).NotTo(HaveOccurred())

			msgs, err := driver.List(ctx, 1, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(msgs[0].ID).To(Equal(created.ID))
			Expect(msgs[0].Content).To(Equal(long))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			for i := range 30 {
				_, err := driver.Create(ctx, store.Message{Content: fmt.Sprintf("message %d", i)})
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("returns the 20 most recent for limit=20", func() {
			msgs, err := driver.List(ctx, 20, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(msgs).To(HaveLen(20))
			Expect(msgs[0].Content).To(Equal("message 29"))
			Expect(msgs[19].Content).To(Equal("message 10"))
		})

		It("applies the offset after ordering", func() {
			msgs, err := driver.List(ctx, 5, 25)
			Expect(err).NotTo(HaveOccurred())
			Expect(msgs).To(HaveLen(5))
			Expect(msgs[0].Content).To(Equal("message 4"))
			Expect(msgs[4].Content).To(Equal("message 0"))
		})

		It("rejects limit <= 0", func() {
			_, err := driver.List(ctx, -1, 0)
			var verr store.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		It("is idempotent", func() {
			msg, err := driver.Create(ctx, store.Message{Content: "x"})
			Expect(err).NotTo(HaveOccurred())

			deleted, err := driver.Delete(ctx, msg.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())

			deleted, err = driver.Delete(ctx, msg.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeFalse())
		})
	})

	Describe("Clear", func() {
		It("returns the number of rows removed", func() {
			for range 5 {
				_, err := driver.Create(ctx, store.Message{Content: "x"})
				Expect(err).NotTo(HaveOccurred())
			}

			count, err := driver.Clear(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(5)))

			msgs, err := driver.List(ctx, 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(msgs).To(BeEmpty())
		})
	})
})
