package testutils

// CodeSample encapsulates a snippet of source code and how many findings the
// rule under test should report for it
type CodeSample struct {
	Code     string
	Findings int
}

var (
	// SampleCodeHardcodedSecret code snippets for hardcoded credentials
	SampleCodeHardcodedSecret = []CodeSample{
		{`char global_password[20] = "admin123";`, 1},
		{`const char *api_key = "sk-abc123456789";`, 1},
		{`string api_secret = "sk-abc123456789";`, 1},
		{`char *pwd = "abc";`, 0},
		{`// password = "admin123"`, 0},
		{`const char *label = "password prompt goes here";`, 0},
		{`int token_count = 3;`, 0},
	}

	// SampleCodeUnsafeGets code snippets for the unbounded line reader
	SampleCodeUnsafeGets = []CodeSample{
		{`gets(buffer);`, 1},
		{`fgets(buffer, sizeof(buffer), stdin);`, 0},
		{`// gets(buffer);`, 0},
		{`printf("never call gets(buffer)");`, 0},
		{`obj->gets(buffer);`, 0},
	}

	// SampleCodeUnsafeStrcpy code snippets for the unbounded string copy
	SampleCodeUnsafeStrcpy = []CodeSample{
		{`strcpy(dst, src);`, 1},
		{`strncpy(dst, src, sizeof(dst));`, 0},
		{`/* strcpy(dst, src); */`, 0},
	}

	// SampleCodeUnsafeStrcat code snippets for the unbounded string concat
	SampleCodeUnsafeStrcat = []CodeSample{
		{`strcat(dst, src);`, 1},
		{`strncat(dst, src, n);`, 0},
	}

	// SampleCodeUnsafeSprintf code snippets for unbounded formatted print
	SampleCodeUnsafeSprintf = []CodeSample{
		{`sprintf(buf, "%s", input);`, 1},
		{`vsprintf(buf, fmt, args);`, 1},
		{`snprintf(buf, sizeof(buf), "%s", input);`, 0},
	}

	// SampleCodeFormattedQuery code snippets for format-built queries
	SampleCodeFormattedQuery = []CodeSample{
		{`sprintf(q, "SELECT * FROM users WHERE n='%s'", x);`, 1},
		{`sprintf(q, "DELETE FROM logs WHERE owner='%s'", who);`, 1},
		{`sprintf(buf, "hello %s", name);`, 0},
		{`sprintf(q, "SELECT * FROM users");`, 0},
		{`// sprintf(q, "SELECT %s", x);`, 0},
	}

	// SampleCodeCommandExecution code snippets for shell execution
	SampleCodeCommandExecution = []CodeSample{
		{`system("ls -la");`, 1},
		{`popen(cmd, "r");`, 1},
		{`execvp(path, argv);`, 1},
		{`ecosystem(x);`, 0},
		{`// system("rm -rf /");`, 0},
	}

	// SampleCodeUncheckedDivision code snippets for risky integer division
	SampleCodeUncheckedDivision = []CodeSample{
		{`int divide(int a, int b) { return a / b; }`, 1},
		{`int half(int a) { return a / 2; }`, 0},
		{`int boom(int a) { return a / 0; }`, 1},
		{`int safe(int a, int b) { if (b == 0) return 0; return a / b; }`, 0},
		{`int safe2(int a, int b) { if (b != 0) { return a / b; } return 0; }`, 0},
		{`double ratio(double a, double b) { return a / 1.5; }`, 0},
	}

	// SampleCodeMemoryLeak code snippets for the leak heuristic
	SampleCodeMemoryLeak = []CodeSample{
		{`void f() { char *p = malloc(100); return; }`, 1},
		{`void f() { char *p = malloc(100); free(p); }`, 0},
		{`void f() { char *p = calloc(4, 25); free(p); }`, 0},
		{`void f() { buffer = (char *)malloc(100); }`, 1},
		{`void f() { int *v = new int[10]; delete[] v; }`, 0},
		{`void f() { int *v = new int[10]; }`, 1},
	}

	// SampleCodeUninitializedRead code snippets for the read-before-assign
	// heuristic
	SampleCodeUninitializedRead = []CodeSample{
		{`void f() { int r; printf("%d", r); }`, 1},
		{`void f() { int r; r = 0; printf("%d", r); }`, 0},
		{`void f() { int x, y; scanf("%d %d", &x, &y); use(x, y); }`, 0},
		{`void f() { int x, y, result; printf("%d", result); use(&x, &y); }`, 1},
		{`int counter;`, 0},
	}

	// SampleCodeDebugPrint code snippets for leftover debug output
	SampleCodeDebugPrint = []CodeSample{
		{`printf("debug: x=%d\n", x);`, 1},
		{`cout << "Debug mode active" << endl;`, 1},
		{`printf("%d\n", x);`, 0},
		{`// printf("debug");`, 0},
	}

	// SampleCodeTodoComment code snippets for TODO markers
	SampleCodeTodoComment = []CodeSample{
		{`// TODO: fix this later`, 1},
		{`/* FIXME handle overflow */`, 1},
		{`int todo_list;`, 0},
		{`printf("TODO");`, 0},
		{`// plain comment`, 0},
	}

	// SampleCodeTestLeftoverComment code snippets for test scaffold markers
	SampleCodeTestLeftoverComment = []CodeSample{
		{`// hello test scaffolding left behind`, 1},
		{`// test comment here`, 1},
		{`// latest changes`, 0},
		{`printf("hello");`, 0},
	}

	// SampleCodeSecretExposure code snippets for printed secrets
	SampleCodeSecretExposure = []CodeSample{
		{`cout << "API Secret: " << api_secret << endl;`, 1},
		{`printf("%s\n", password);`, 1},
		{`printf("no secrets here\n");`, 0},
		{`cout << greeting << endl;`, 0},
	}
)

// CFixture mirrors the planted C defect corpus: credentials in a global,
// unbounded input and copies, a format-built query, an unguarded division,
// a leaking allocation and a read of an unassigned scalar.
const CFixture = `#include <stdio.h>
#include <stdlib.h>
#include <string.h>

char global_password[20] = "admin123";

void read_name(char *buffer) {
    printf("Enter your name: ");
    gets(buffer);
}

char *build_greeting(char *name) {
    char *greet = malloc(50);
    strcpy(greet, "Hello ");
    strcat(greet, name);
    return greet;
}

void query_database(char *input) {
    char query[200];
    sprintf(query, "SELECT * FROM users WHERE name = '%s';", input);
    printf("Executing query: %s\n", query);
}

int divide(int a, int b) {
    return a / b;
}

int main() {
    char name[10];
    int x, y, result;

    printf("result = %d\n", result);

    read_name(name);
    char *greeting = build_greeting(name);
    printf("%s\n", greeting);

    query_database(name);

    scanf("%d %d", &x, &y);
    printf("%d\n", divide(x, y));

    return 0;
}
`

// CFixtureFindings is the total finding count for CFixture with every rule
// enabled.
const CFixtureFindings = 9

// CppFixture mirrors the planted C++ defect corpus, adding command
// execution, debug output, leftover comments and a printed secret.
const CppFixture = `#include <iostream>
#include <cstring>
#include <cstdlib>

using namespace std;

string api_secret = "sk-abc123456789";

class Session {
  private:
    char *buffer;

  public:
    Session() {
        buffer = (char *)malloc(100);
    }

    void readInput() {
        char input[50];
        cout << "Enter data: ";
        gets(input);
        strcpy(buffer, input);
    }

    void process(const char *data) {
        char query[200];
        sprintf(query, "SELECT * FROM users WHERE name = '%s'", data);
        cout << query << endl;
    }

    int divide(int a, int b) {
        return a / b;
    }

    // hello test scaffolding left behind
    void debugDump() {
        cout << "Debug mode active" << endl;
        // TODO: remove before release
        system("ls -la");
    }
};

int main() {
    Session session;

    session.readInput();
    session.process("admin; drop everything");

    cout << "API Secret: " << api_secret << endl;

    int result = session.divide(10, 0);
    cout << "Result: " << result << endl;

    return 0;
}
`

// CppFixtureFindings is the total finding count for CppFixture with every
// rule enabled.
const CppFixtureFindings = 12
