package csec_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/securec/csec"
	"github.com/securec/csec/rules"
	"github.com/securec/csec/testutils"
)

var _ = Describe("Errors", func() {
	Context("when creating a new error", func() {
		It("should keep the position and message", func() {
			err := csec.NewError(10, 5, "test error message")
			Expect(err.Line).Should(Equal(10))
			Expect(err.Column).Should(Equal(5))
			Expect(err.Err).Should(Equal("test error message"))
		})
	})

	Context("when the analyzer records scan errors", func() {
		var analyzer *csec.Analyzer

		BeforeEach(func() {
			logger, _ := testutils.NewLogger()
			analyzer = csec.NewAnalyzer(csec.NewConfig(), logger)
			analyzer.LoadRules(rules.Generate().Builders()...)
		})

		It("should group them by logical path", func() {
			Expect(analyzer.Scan("a.bin", []byte{0x00})).ShouldNot(Succeed())
			Expect(analyzer.Scan("b.bin", []byte{0x00})).ShouldNot(Succeed())

			collected := analyzer.Errors()
			Expect(collected).Should(HaveLen(2))
			Expect(collected["a.bin"]).Should(HaveLen(1))
			Expect(collected["b.bin"]).Should(HaveLen(1))
		})

		It("should accumulate repeated failures on one path", func() {
			Expect(analyzer.Scan("a.bin", []byte{0x00})).ShouldNot(Succeed())
			Expect(analyzer.Scan("a.bin", []byte{0x00})).ShouldNot(Succeed())

			collected := analyzer.Errors()
			Expect(collected["a.bin"]).Should(HaveLen(2))
			for _, scanError := range collected["a.bin"] {
				Expect(scanError.Line).Should(Equal(1))
				Expect(scanError.Column).Should(Equal(1))
				Expect(scanError.Err).ShouldNot(BeEmpty())
			}
		})

		It("should report no errors for a clean run", func() {
			Expect(analyzer.Scan("clean.c", []byte("int x = 1;"))).Should(Succeed())
			Expect(analyzer.Errors()).Should(BeEmpty())
		})
	})
})
