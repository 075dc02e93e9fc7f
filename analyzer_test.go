package csec_test

import (
	"fmt"
	"log"
	"sort"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/securec/csec"
	"github.com/securec/csec/issue"
	"github.com/securec/csec/rules"
	"github.com/securec/csec/testutils"
)

// explodingRule panics on every match, used to verify rule isolation.
type explodingRule struct{}

func (explodingRule) ID() string { return "EXPLODING" }

func (explodingRule) Match(*csec.Context) ([]*issue.Issue, error) {
	panic("boom")
}

func taggedFindings(issues []*issue.Issue) []string {
	tags := make([]string, 0, len(issues))
	for _, iss := range issues {
		tags = append(tags, fmt.Sprintf("%s@%d", iss.RuleID, iss.Line))
	}
	return tags
}

var _ = Describe("Analyzer", func() {
	var (
		analyzer *csec.Analyzer
		logger   *log.Logger
	)

	BeforeEach(func() {
		logger, _ = testutils.NewLogger()
		analyzer = csec.NewAnalyzer(csec.NewConfig(), logger)
		analyzer.LoadRules(rules.Generate().Builders()...)
	})

	Context("when scanning the C defect corpus", func() {
		It("should report each planted defect once, in order", func() {
			err := analyzer.Scan("unsafe.c", []byte(testutils.CFixture))
			Expect(err).ShouldNot(HaveOccurred())

			issues, _ := analyzer.Report()
			Expect(issues).Should(HaveLen(testutils.CFixtureFindings))
			Expect(taggedFindings(issues)).Should(Equal([]string{
				"HARDCODED_SECRET@5",
				"UNSAFE_GETS@9",
				"POSSIBLE_MEMORY_LEAK@13",
				"UNSAFE_STRCPY@14",
				"UNSAFE_STRCAT@15",
				"UNSAFE_SPRINTF@21",
				"FORMATTED_QUERY@21",
				"UNCHECKED_DIVISION@26",
				"UNINITIALIZED_READ@33",
			}))
		})

		It("should anchor every finding on a non-whitespace byte", func() {
			err := analyzer.Scan("unsafe.c", []byte(testutils.CFixture))
			Expect(err).ShouldNot(HaveOccurred())

			lines := strings.Split(testutils.CFixture, "\n")
			issues, _ := analyzer.Report()
			for _, iss := range issues {
				line := lines[iss.Line-1]
				Expect(iss.Col).Should(BeNumerically(">=", 1))
				Expect(iss.Col).Should(BeNumerically("<=", len(line)))
				anchor := line[iss.Col-1]
				Expect(anchor).ShouldNot(Equal(byte(' ')), "finding %s@%d:%d", iss.RuleID, iss.Line, iss.Col)
				Expect(anchor).ShouldNot(Equal(byte('\t')))
			}
		})

		It("should attach path, snippet and CWE to findings", func() {
			err := analyzer.Scan("unsafe.c", []byte(testutils.CFixture))
			Expect(err).ShouldNot(HaveOccurred())

			issues, _ := analyzer.Report()
			for _, iss := range issues {
				Expect(iss.Path).Should(Equal("unsafe.c"))
				Expect(iss.Code).ShouldNot(BeEmpty())
				Expect(iss.Cwe).ShouldNot(BeNil())
			}
		})
	})

	Context("when scanning the C++ defect corpus", func() {
		It("should report each planted defect once, in order", func() {
			err := analyzer.Scan("session.cpp", []byte(testutils.CppFixture))
			Expect(err).ShouldNot(HaveOccurred())

			issues, _ := analyzer.Report()
			Expect(issues).Should(HaveLen(testutils.CppFixtureFindings))
			Expect(taggedFindings(issues)).Should(Equal([]string{
				"HARDCODED_SECRET@7",
				"POSSIBLE_MEMORY_LEAK@15",
				"UNSAFE_GETS@21",
				"UNSAFE_STRCPY@22",
				"UNSAFE_SPRINTF@27",
				"FORMATTED_QUERY@27",
				"UNCHECKED_DIVISION@32",
				"TEST_LEFTOVER_COMMENT@35",
				"DEBUG_PRINT@37",
				"TODO_COMMENT@38",
				"COMMAND_EXECUTION@39",
				"SECRET_EXPOSURE@49",
			}))
		})
	})

	Context("when scanning the same buffer twice", func() {
		It("should produce identical findings", func() {
			Expect(analyzer.Scan("session.cpp", []byte(testutils.CppFixture))).Should(Succeed())
			first, _ := analyzer.Report()

			analyzer.Reset()
			Expect(analyzer.Scan("session.cpp", []byte(testutils.CppFixture))).Should(Succeed())
			second, _ := analyzer.Report()

			Expect(second).Should(Equal(first))
		})
	})

	Context("when two buffers are concatenated", func() {
		It("should report the union of findings with shifted lines", func() {
			Expect(analyzer.Scan("one.c", []byte(testutils.CFixture))).Should(Succeed())
			first, _ := analyzer.Report()
			want := taggedFindings(first)

			analyzer.Reset()
			Expect(analyzer.Scan("two.cpp", []byte(testutils.CppFixture))).Should(Succeed())
			second, _ := analyzer.Report()

			shift := strings.Count(testutils.CFixture, "\n") + 1
			for _, iss := range second {
				want = append(want, fmt.Sprintf("%s@%d", iss.RuleID, iss.Line+shift))
			}
			sort.Strings(want)

			analyzer.Reset()
			combined := testutils.CFixture + "\n" + testutils.CppFixture
			Expect(analyzer.Scan("combined.cpp", []byte(combined))).Should(Succeed())
			merged, _ := analyzer.Report()

			got := taggedFindings(merged)
			sort.Strings(got)
			Expect(got).Should(Equal(want))
		})
	})

	Context("when dangerous tokens sit in comments or literals", func() {
		It("should only report the comment-scan rules", func() {
			code := `/* gets(buf) TODO sprintf(q, "SELECT %s", x) */
char *s = "system(demo) SELECT %s";`
			Expect(analyzer.Scan("quiet.c", []byte(code))).Should(Succeed())

			issues, _ := analyzer.Report()
			Expect(taggedFindings(issues)).Should(Equal([]string{"TODO_COMMENT@1"}))
		})
	})

	Context("when several primitives share a line", func() {
		It("should order findings by column", func() {
			Expect(analyzer.Scan("t.c", []byte(`gets(buf); strcpy(dst, buf);`))).Should(Succeed())

			issues, _ := analyzer.Report()
			Expect(issues).Should(HaveLen(2))
			Expect(issues[0].RuleID).Should(Equal("UNSAFE_GETS"))
			Expect(issues[0].Col).Should(Equal(1))
			Expect(issues[1].RuleID).Should(Equal("UNSAFE_STRCPY"))
			Expect(issues[1].Col).Should(Equal(12))
		})
	})

	Context("when a format call builds a query", func() {
		It("should report both the unsafe call and the formatted query", func() {
			code := `sprintf(q, "SELECT * FROM users WHERE n='%s'", x);`
			Expect(analyzer.Scan("q.c", []byte(code))).Should(Succeed())

			issues, _ := analyzer.Report()
			Expect(taggedFindings(issues)).Should(Equal([]string{
				"UNSAFE_SPRINTF@1",
				"FORMATTED_QUERY@1",
			}))
		})
	})

	Context("when a secret literal is assigned", func() {
		It("should anchor the finding at the literal", func() {
			code := `const char *api_key = "sk-abc123456789";`
			Expect(analyzer.Scan("k.c", []byte(code))).Should(Succeed())

			issues, _ := analyzer.Report()
			Expect(issues).Should(HaveLen(1))
			Expect(issues[0].RuleID).Should(Equal("HARDCODED_SECRET"))
			Expect(issues[0].Line).Should(Equal(1))
			Expect(issues[0].Col).Should(Equal(23))
		})
	})

	Context("when an allocation is never released", func() {
		It("should report a possible leak", func() {
			code := `void f() { char *p = malloc(100); return p; }`
			Expect(analyzer.Scan("m.c", []byte(code))).Should(Succeed())

			issues, _ := analyzer.Report()
			Expect(taggedFindings(issues)).Should(Equal([]string{"POSSIBLE_MEMORY_LEAK@1"}))
		})
	})

	Context("when a division has no guard", func() {
		It("should report it", func() {
			code := `int f(int a, int b) { return a / b; }`
			Expect(analyzer.Scan("d.c", []byte(code))).Should(Succeed())

			issues, _ := analyzer.Report()
			Expect(taggedFindings(issues)).Should(Equal([]string{"UNCHECKED_DIVISION@1"}))
		})
	})

	Context("when a division is guarded", func() {
		It("should stay silent", func() {
			code := `int f(int a, int b) { if (b == 0) return -1; return a / b; }`
			Expect(analyzer.Scan("d.c", []byte(code))).Should(Succeed())

			issues, _ := analyzer.Report()
			Expect(issues).Should(BeEmpty())
		})
	})

	Context("when a scalar is read before any assignment", func() {
		It("should report the read and stay silent once assigned", func() {
			Expect(analyzer.Scan("u.c", []byte(`void f() { int r; printf("%d", r); }`))).Should(Succeed())
			issues, _ := analyzer.Report()
			Expect(taggedFindings(issues)).Should(Equal([]string{"UNINITIALIZED_READ@1"}))

			analyzer.Reset()
			Expect(analyzer.Scan("u.c", []byte(`void f() { int r; r = 0; printf("%d", r); }`))).Should(Succeed())
			issues, _ = analyzer.Report()
			Expect(issues).Should(BeEmpty())
		})
	})

	Context("when two rule hits collapse onto one position", func() {
		It("should deduplicate them", func() {
			code := `char *password_token = "abcdef123456";`
			Expect(analyzer.Scan("p.c", []byte(code))).Should(Succeed())

			issues, _ := analyzer.Report()
			Expect(issues).Should(HaveLen(1))
			Expect(issues[0].RuleID).Should(Equal("HARDCODED_SECRET"))
		})
	})

	Context("when rules are filtered by id", func() {
		It("should exclude exactly the named rules", func() {
			analyzer = csec.NewAnalyzer(csec.NewConfig(), logger)
			analyzer.LoadRules(rules.Generate(
				rules.NewRuleFilter(true, "UNSAFE_GETS", "UNSAFE_STRCPY")).Builders()...)

			Expect(analyzer.Scan("session.cpp", []byte(testutils.CppFixture))).Should(Succeed())
			issues, _ := analyzer.Report()
			Expect(issues).Should(HaveLen(testutils.CppFixtureFindings - 2))
			for _, iss := range issues {
				Expect(iss.RuleID).ShouldNot(Equal("UNSAFE_GETS"))
				Expect(iss.RuleID).ShouldNot(Equal("UNSAFE_STRCPY"))
			}
		})
	})

	Context("when rules are filtered by category", func() {
		It("should only run the remaining categories", func() {
			analyzer = csec.NewAnalyzer(csec.NewConfig(), logger)
			analyzer.LoadRules(rules.Generate(
				rules.NewCategoryFilter(true, issue.CatSecurity)).Builders()...)

			Expect(analyzer.Scan("session.cpp", []byte(testutils.CppFixture))).Should(Succeed())
			issues, _ := analyzer.Report()
			Expect(taggedFindings(issues)).Should(Equal([]string{
				"POSSIBLE_MEMORY_LEAK@15",
				"UNCHECKED_DIVISION@32",
				"TEST_LEFTOVER_COMMENT@35",
				"DEBUG_PRINT@37",
				"TODO_COMMENT@38",
			}))
		})
	})

	Context("when a rule panics", func() {
		It("should isolate the failure and keep the other findings", func() {
			analyzer.LoadRules(func(csec.Config) csec.Rule { return explodingRule{} })

			err := analyzer.Scan("t.c", []byte(`gets(buf);`))
			Expect(err).ShouldNot(HaveOccurred())

			issues, _ := analyzer.Report()
			Expect(taggedFindings(issues)).Should(Equal([]string{
				"UNSAFE_GETS@1",
				"RULE_ERROR@1",
			}))
			Expect(issues[1].What).Should(ContainSubstring("EXPLODING"))
			Expect(analyzer.Errors()).Should(HaveKey("t.c"))
		})
	})

	Context("when the buffer is not text", func() {
		It("should leave one synthetic finding and report the error", func() {
			err := analyzer.Scan("blob.bin", []byte{0x7f, 0x00, 0x01})
			Expect(err).Should(MatchError(csec.ErrInvalidInput))

			issues, metrics := analyzer.Report()
			Expect(issues).Should(HaveLen(1))
			Expect(issues[0].RuleID).Should(Equal(csec.RuleInvalidInput))
			Expect(issues[0].Line).Should(Equal(1))
			Expect(issues[0].Col).Should(Equal(1))
			Expect(metrics.NumFiles).Should(Equal(1))
			Expect(metrics.NumFound).Should(Equal(1))
			Expect(analyzer.Errors()).Should(HaveKey("blob.bin"))
		})

		It("should not abort a multi-buffer run", func() {
			Expect(analyzer.Scan("blob.bin", []byte{0x00})).ShouldNot(Succeed())
			Expect(analyzer.Scan("t.c", []byte(`gets(buf);`))).Should(Succeed())

			issues, metrics := analyzer.Report()
			Expect(issues).Should(HaveLen(2))
			Expect(metrics.NumFiles).Should(Equal(2))
		})
	})

	Context("when tracking metrics", func() {
		It("should count files, lines and findings", func() {
			Expect(analyzer.Scan("one.c", []byte(testutils.CFixture))).Should(Succeed())
			Expect(analyzer.Scan("two.cpp", []byte(testutils.CppFixture))).Should(Succeed())

			_, metrics := analyzer.Report()
			Expect(metrics.NumFiles).Should(Equal(2))
			Expect(metrics.NumFound).Should(Equal(testutils.CFixtureFindings + testutils.CppFixtureFindings))
			wantLines := strings.Count(testutils.CFixture, "\n") + 1 +
				strings.Count(testutils.CppFixture, "\n") + 1
			Expect(metrics.NumLines).Should(Equal(wantLines))
		})
	})

	Context("when resetting the analyzer", func() {
		It("should clear findings, errors and metrics but keep the rules", func() {
			Expect(analyzer.Scan("one.c", []byte(testutils.CFixture))).Should(Succeed())
			analyzer.Reset()

			issues, metrics := analyzer.Report()
			Expect(issues).Should(BeEmpty())
			Expect(metrics.NumFiles).Should(BeZero())
			Expect(analyzer.Errors()).Should(BeEmpty())

			Expect(analyzer.Scan("one.c", []byte(testutils.CFixture))).Should(Succeed())
			issues, _ = analyzer.Report()
			Expect(issues).Should(HaveLen(testutils.CFixtureFindings))
		})
	})
})
