package kafka_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/recall/pkg/eventstream"
	"github.com/papercomputeco/recall/pkg/eventstream/kafka"
)

var _ = Describe("NewPublisher", func() {
	It("requires at least one broker", func() {
		_, err := kafka.NewPublisher(kafka.Config{Topic: "recall.insights"})
		Expect(err).To(HaveOccurred())
	})

	It("requires a topic", func() {
		_, err := kafka.NewPublisher(kafka.Config{Brokers: []string{"localhost:9092"}})
		Expect(err).To(HaveOccurred())
	})

	It("creates a publisher without connecting", func() {
		p, err := kafka.NewPublisher(kafka.Config{
			Brokers: []string{"localhost:9092"},
			Topic:   "recall.insights",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(p).NotTo(BeNil())
		Expect(p.Close()).To(Succeed())
	})

	It("rejects nil events before touching the network", func() {
		p, err := kafka.NewPublisher(kafka.Config{
			Brokers: []string{"localhost:9092"},
			Topic:   "recall.insights",
		})
		Expect(err).NotTo(HaveOccurred())
		defer p.Close()

		err = p.PublishInsight(context.Background(), nil)
		Expect(err).To(MatchError(eventstream.ErrNilInsightEvent))
	})
})
