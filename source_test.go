package csec_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/securec/csec"
)

var _ = Describe("SourceBuffer", func() {
	Context("when wrapping raw bytes", func() {
		It("should keep the logical path", func() {
			source, err := csec.NewSourceBuffer("dir/file.c", []byte("int x;"))
			Expect(err).ShouldNot(HaveOccurred())
			Expect(source.Path()).Should(Equal("dir/file.c"))
			Expect(source.Len()).Should(Equal(6))
		})

		It("should reject buffers containing NUL bytes", func() {
			_, err := csec.NewSourceBuffer("blob.bin", []byte{'a', 0x00, 'b'})
			Expect(err).Should(MatchError(csec.ErrInvalidInput))
		})
	})

	Context("when counting lines", func() {
		It("should treat an empty buffer as one line", func() {
			source, err := csec.NewSourceBuffer("empty.c", nil)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(source.NumLines()).Should(Equal(1))
		})

		It("should not require a trailing newline", func() {
			source, err := csec.NewSourceBuffer("t.c", []byte("a\nb"))
			Expect(err).ShouldNot(HaveOccurred())
			Expect(source.NumLines()).Should(Equal(2))
		})

		It("should count the line opened by a trailing newline", func() {
			source, err := csec.NewSourceBuffer("t.c", []byte("a\n"))
			Expect(err).ShouldNot(HaveOccurred())
			Expect(source.NumLines()).Should(Equal(2))
		})
	})

	Context("when resolving offsets", func() {
		var source *csec.SourceBuffer

		BeforeEach(func() {
			var err error
			source, err = csec.NewSourceBuffer("t.c", []byte("ab\ncd\n"))
			Expect(err).ShouldNot(HaveOccurred())
		})

		It("should map offsets to 1-based line and column", func() {
			line, col := source.Location(0)
			Expect([]int{line, col}).Should(Equal([]int{1, 1}))

			line, col = source.Location(1)
			Expect([]int{line, col}).Should(Equal([]int{1, 2}))

			line, col = source.Location(3)
			Expect([]int{line, col}).Should(Equal([]int{2, 1}))

			line, col = source.Location(4)
			Expect([]int{line, col}).Should(Equal([]int{2, 2}))
		})

		It("should map the newline onto its own line", func() {
			line, col := source.Location(2)
			Expect([]int{line, col}).Should(Equal([]int{1, 3}))
		})

		It("should map an offset at buffer end onto the final line", func() {
			line, col := source.Location(source.Len())
			Expect([]int{line, col}).Should(Equal([]int{3, 1}))
		})

		It("should clamp out-of-range offsets", func() {
			line, col := source.Location(-5)
			Expect([]int{line, col}).Should(Equal([]int{1, 1}))

			line, col = source.Location(100)
			Expect([]int{line, col}).Should(Equal([]int{3, 1}))
		})
	})

	Context("when slicing lines", func() {
		var source *csec.SourceBuffer

		BeforeEach(func() {
			var err error
			source, err = csec.NewSourceBuffer("t.c", []byte("ab\ncd\nxyz"))
			Expect(err).ShouldNot(HaveOccurred())
		})

		It("should exclude the line terminator from the span", func() {
			start, end := source.LineSpan(1)
			Expect([]int{start, end}).Should(Equal([]int{0, 2}))

			start, end = source.LineSpan(2)
			Expect([]int{start, end}).Should(Equal([]int{3, 5}))
		})

		It("should run the final span to buffer end", func() {
			start, end := source.LineSpan(3)
			Expect([]int{start, end}).Should(Equal([]int{6, 9}))
		})

		It("should return an empty span for out-of-range lines", func() {
			start, end := source.LineSpan(0)
			Expect([]int{start, end}).Should(Equal([]int{0, 0}))

			start, end = source.LineSpan(9)
			Expect([]int{start, end}).Should(Equal([]int{0, 0}))
		})

		It("should render line snippets", func() {
			Expect(source.CodeLine(2)).Should(Equal("cd"))
			Expect(source.CodeLine(3)).Should(Equal("xyz"))
		})
	})

	Context("when extracting byte ranges", func() {
		It("should reject out-of-range slices", func() {
			source, err := csec.NewSourceBuffer("t.c", []byte("abc"))
			Expect(err).ShouldNot(HaveOccurred())

			_, err = source.Slice(1, 7)
			Expect(err).Should(HaveOccurred())
			_, err = source.Slice(-1, 2)
			Expect(err).Should(HaveOccurred())
			_, err = source.Slice(2, 1)
			Expect(err).Should(HaveOccurred())
		})
	})

	Context("when decoding text", func() {
		It("should replace invalid byte sequences", func() {
			source, err := csec.NewSourceBuffer("t.c", []byte{'a', 0xff, 'b'})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(source.Text(0, 3)).Should(Equal("a�b"))
		})

		It("should pass valid UTF-8 through unchanged", func() {
			source, err := csec.NewSourceBuffer("t.c", []byte("héllo"))
			Expect(err).ShouldNot(HaveOccurred())
			Expect(source.Text(0, source.Len())).Should(Equal("héllo"))
		})
	})
})
