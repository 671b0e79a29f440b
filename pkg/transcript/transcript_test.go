package transcript_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/recall/pkg/transcript"
)

var _ = Describe("LatestAssistantText", func() {
	It("extracts the last assistant message from nested events", func() {
		log := strings.Join([]string{
			`{"message":{"role":"user","content":[{"type":"text","text":"why is this failing?"}]}}`,
			`{"message":{"role":"assistant","content":[{"type":"text","text":"Looking at the stack trace."}]}}`,
			`{"message":{"role":"assistant","content":[{"type":"text","text":"Found the root cause: a nil map."}]}}`,
		}, "\n")

		text, err := transcript.LatestAssistantText(strings.NewReader(log))
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("Found the root cause: a nil map."))
	})

	It("accepts the flat event shape with string content", func() {
		log := `{"role":"assistant","content":"note: cache invalidation was the issue"}`

		text, err := transcript.LatestAssistantText(strings.NewReader(log))
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("note: cache invalidation was the issue"))
	})

	It("joins multiple text blocks with newlines", func() {
		log := `{"message":{"role":"assistant","content":[` +
			`{"type":"text","text":"first"},` +
			`{"type":"tool_use","name":"bash"},` +
			`{"type":"text","text":"second"}]}}`

		text, err := transcript.LatestAssistantText(strings.NewReader(log))
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("first\nsecond"))
	})

	It("ignores non-assistant and malformed lines", func() {
		log := strings.Join([]string{
			`{"message":{"role":"user","content":"hi"}}`,
			`not json at all`,
			`{"type":"summary","summary":"session"}`,
		}, "\n")

		text, err := transcript.LatestAssistantText(strings.NewReader(log))
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(BeEmpty())
	})

	It("returns empty for an empty transcript", func() {
		text, err := transcript.LatestAssistantText(strings.NewReader(""))
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(BeEmpty())
	})
})

var _ = Describe("LatestAssistantTextFile", func() {
	It("reads a transcript from disk", func() {
		tmpDir := GinkgoT().TempDir()
		path := filepath.Join(tmpDir, "session.jsonl")
		content := `{"message":{"role":"assistant","content":[{"type":"text","text":"learned something"}]}}` + "\n"
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())

		text, err := transcript.LatestAssistantTextFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("learned something"))
	})

	It("errors on a missing file", func() {
		_, err := transcript.LatestAssistantTextFile("/does/not/exist.jsonl")
		Expect(err).To(HaveOccurred())
	})
})
