package cwe

var idWeaknesses = map[string]*Weakness{
	"78": {
		ID:          "78",
		Description: "The software constructs all or part of an OS command using externally-influenced input from an upstream component, but it does not neutralize or incorrectly neutralizes special elements that could modify the intended OS command when it is sent to a downstream component.",
		Name:        "Improper Neutralization of Special Elements used in an OS Command ('OS Command Injection')",
	},
	"89": {
		ID:          "89",
		Description: "The software constructs all or part of an SQL command using externally-influenced input from an upstream component, but it does not neutralize or incorrectly neutralizes special elements that could modify the intended SQL command when it is sent to a downstream component.",
		Name:        "Improper Neutralization of Special Elements used in an SQL Command ('SQL Injection')",
	},
	"120": {
		ID:          "120",
		Description: "The program copies an input buffer to an output buffer without verifying that the size of the input buffer is less than the size of the output buffer, leading to a buffer overflow.",
		Name:        "Buffer Copy without Checking Size of Input ('Classic Buffer Overflow')",
	},
	"200": {
		ID:          "200",
		Description: "The product exposes sensitive information to an actor that is not explicitly authorized to have access to that information.",
		Name:        "Exposure of Sensitive Information to an Unauthorized Actor",
	},
	"242": {
		ID:          "242",
		Description: "The program calls a function that can never be guaranteed to work safely.",
		Name:        "Use of Inherently Dangerous Function",
	},
	"369": {
		ID:          "369",
		Description: "The product divides a value by zero.",
		Name:        "Divide By Zero",
	},
	"401": {
		ID:          "401",
		Description: "The software does not sufficiently track and release allocated memory after it has been used, which slowly consumes remaining memory.",
		Name:        "Missing Release of Memory after Effective Lifetime",
	},
	"457": {
		ID:          "457",
		Description: "The code uses a variable that has not been initialized, leading to unpredictable or unintended results.",
		Name:        "Use of Uninitialized Variable",
	},
	"489": {
		ID:          "489",
		Description: "The application is deployed to unauthorized actors with debugging code still enabled or active, which can create unintended entry points or expose sensitive information.",
		Name:        "Active Debug Code",
	},
	"546": {
		ID:          "546",
		Description: "The code contains comments that suggest the presence of bugs, incomplete functionality, or weaknesses.",
		Name:        "Suspicious Comment",
	},
	"798": {
		ID:          "798",
		Description: "The software contains hard-coded credentials, such as a password or cryptographic key, which it uses for its own inbound authentication, outbound communication to external components, or encryption of internal data.",
		Name:        "Use of Hard-coded Credentials",
	},
}

// Get Retrieves a CWE weakness by it's id
func Get(id string) *Weakness {
	weakness, ok := idWeaknesses[id]
	if ok && weakness != nil {
		return weakness
	}
	return nil
}
