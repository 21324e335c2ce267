// Package console implements the terminal front end: prompting for
// rankings, an interactive picker and styled result reports.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Input validation errors.
var (
	ErrNotNumber      = errors.New("input is not a list of numbers")
	ErrWrongCount     = errors.New("wrong number of entries")
	ErrNotPermutation = errors.New("every item must appear exactly once")
	ErrBlankName      = errors.New("name must not be blank")
	ErrDuplicateName  = errors.New("name already used")
)

// ParseIndices turns comma-separated 1-based item numbers into 0-based
// indices. The result must be a permutation of 0..n-1.
func ParseIndices(input string, n int) ([]int, error) {
	fields := strings.Split(input, ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrNotNumber, strings.TrimSpace(f))
		}
		out = append(out, v-1)
	}
	if len(out) != n {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrWrongCount, len(out), n)
	}
	seen := make([]bool, n)
	for _, idx := range out {
		if idx < 0 || idx >= n || seen[idx] {
			return nil, ErrNotPermutation
		}
		seen[idx] = true
	}
	return out, nil
}

// Prompter asks questions on a line-oriented terminal.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter reads answers from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Line prints prompt and returns the next input line. It returns io.EOF
// once input is exhausted.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Indices asks person for an ordering of n items until a valid one is entered.
func (p *Prompter) Indices(person string, n int) ([]int, error) {
	fmt.Fprintf(p.out, "\n%s，請為以下物品排序（輸入物品編號，用逗號分隔）:\n", person)
	fmt.Fprintln(p.out, "例如: "+exampleOrder(n))

	for {
		line, err := p.Line(person + " 的排序: ")
		if err != nil {
			return nil, err
		}
		indices, err := ParseIndices(line, n)
		switch {
		case err == nil:
			fmt.Fprintln(p.out, "✅ 排序已保存")
			return indices, nil
		case errors.Is(err, ErrWrongCount):
			fmt.Fprintf(p.out, "❌ 錯誤: 請輸入 %d 個物品\n", n)
		case errors.Is(err, ErrNotPermutation):
			fmt.Fprintln(p.out, "❌ 錯誤: 每個物品必須恰好出現一次")
		default:
			fmt.Fprintln(p.out, "❌ 輸入無效，請重試")
		}
	}
}

// Count asks for a positive integer until one is entered.
func (p *Prompter) Count(prompt string) (int, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n > 0 {
			return n, nil
		}
		fmt.Fprintln(p.out, "❌ 請輸入正整數")
	}
}

// Name asks for a non-blank name not present in taken.
func (p *Prompter) Name(prompt string, taken map[string]bool) (string, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return "", err
		}
		err = ValidateName(line, taken)
		switch {
		case err == nil:
			return line, nil
		case errors.Is(err, ErrBlankName):
			fmt.Fprintln(p.out, "❌ 名字不可空白")
		case errors.Is(err, ErrDuplicateName):
			fmt.Fprintln(p.out, "❌ 這個名字已經使用過")
		}
	}
}

// ValidateName rejects blank names and names already in taken.
func ValidateName(name string, taken map[string]bool) error {
	switch {
	case strings.TrimSpace(name) == "":
		return ErrBlankName
	case taken[name]:
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	return nil
}

func exampleOrder(n int) string {
	if n < 3 {
		parts := make([]string, n)
		for i := range parts {
			parts[i] = strconv.Itoa(i + 1)
		}
		return strings.Join(parts, ",")
	}
	parts := []string{"1", "3", "2"}
	for i := 4; i <= n; i++ {
		parts = append(parts, strconv.Itoa(i))
	}
	return strings.Join(parts, ",")
}
