package cwe_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/securec/csec/cwe"
)

var _ = Describe("CWE data", func() {
	Context("when consulting the registry", func() {
		It("should retrieve every weakness the rules refer to", func() {
			for _, id := range []string{"78", "89", "120", "200", "242", "369", "401", "457", "489", "546", "798"} {
				weakness := cwe.Get(id)
				Expect(weakness).ShouldNot(BeNil(), "cwe %s", id)
				Expect(weakness.ID).Should(Equal(id))
				Expect(weakness.Name).ShouldNot(BeEmpty())
				Expect(weakness.Description).ShouldNot(BeEmpty())
			}
		})

		It("should return nil for an unknown id", func() {
			Expect(cwe.Get("0")).Should(BeNil())
			Expect(cwe.Get("")).Should(BeNil())
		})
	})
})
