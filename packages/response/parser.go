package response

import (
	"regexp"
	"strconv"
	"strings"
)

var statusLinePattern = regexp.MustCompile(`^HTTP/\d+(?:\.\d+)? \d{3}(?: .*)?$`)

type state int

const (
	expectStatusLine state = iota
	readHeaders
	captureBody
	done
)

// Result is a parsed response. StatusLines has one entry per message block;
// Headers and Body belong to the last block.
type Result struct {
	StatusLines []string `json:"statusLines"`
	Headers     Headers  `json:"headers"`
	Body        string   `json:"body"`
}

// IsStatusLine reports whether line looks like "HTTP/1.1 200 OK".
func IsStatusLine(line string) bool {
	return statusLinePattern.MatchString(line)
}

// Parse splits raw response text into status lines, headers and body.
//
// Lines end in "\r\n" or a bare "\n"; a whitespace-only line ends a header
// section like an empty one. Input that does not start with a
// status line is returned whole as the body. A header-section line without a
// colon ends the section; it and everything after it become the body.
func Parse(raw string) *Result {
	res := &Result{StatusLines: []string{}}

	if first, _ := readLine(raw, 0); !IsStatusLine(first) {
		res.Body = raw
		return res
	}

	pos := 0
	st := expectStatusLine
	for st != done {
		switch st {
		case expectStatusLine:
			line, next := readLine(raw, pos)
			res.StatusLines = append(res.StatusLines, line)
			res.Headers = Headers{}
			pos = next
			st = readHeaders

		case readHeaders:
			if pos >= len(raw) {
				st = done
				continue
			}
			line, next := readLine(raw, pos)
			if strings.TrimSpace(line) == "" {
				pos = next
				if following, _ := readLine(raw, pos); pos < len(raw) && IsStatusLine(following) {
					st = expectStatusLine
				} else {
					st = captureBody
				}
				continue
			}
			name, value, ok := strings.Cut(line, ":")
			if !ok {
				st = captureBody
				continue
			}
			res.Headers.Add(strings.TrimSpace(name), strings.TrimSpace(value))
			pos = next

		case captureBody:
			res.Body = raw[pos:]
			st = done
		}
	}

	return res
}

// readLine returns the line starting at pos without its terminator, and the
// offset just past the terminator.
func readLine(raw string, pos int) (string, int) {
	if pos >= len(raw) {
		return "", len(raw)
	}
	idx := strings.IndexByte(raw[pos:], '\n')
	if idx < 0 {
		return strings.TrimSuffix(raw[pos:], "\r"), len(raw)
	}
	return strings.TrimSuffix(raw[pos:pos+idx], "\r"), pos + idx + 1
}

// StatusLine returns the final status line, or "" when none was found.
func (r *Result) StatusLine() string {
	if len(r.StatusLines) == 0 {
		return ""
	}
	return r.StatusLines[len(r.StatusLines)-1]
}

// StatusCode returns the code of the final status line, 0 when unknown.
func (r *Result) StatusCode() int {
	fields := strings.SplitN(r.StatusLine(), " ", 3)
	if len(fields) < 2 {
		return 0
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0
	}
	return code
}

// Reason returns the reason phrase of the final status line.
func (r *Result) Reason() string {
	fields := strings.SplitN(r.StatusLine(), " ", 3)
	if len(fields) < 3 {
		return ""
	}
	return fields[2]
}

func (r *Result) Proto() string {
	proto, _, _ := strings.Cut(r.StatusLine(), " ")
	return proto
}

func (r *Result) ContentType() string {
	return r.Headers.Get("Content-Type").Last()
}

func (r *Result) IsSuccess() bool {
	code := r.StatusCode()
	return code >= 200 && code < 300
}

func (r *Result) IsClientError() bool {
	code := r.StatusCode()
	return code >= 400 && code < 500
}

func (r *Result) IsServerError() bool {
	return r.StatusCode() >= 500
}

// Parser parses responses and keeps the most recent result around for
// inspection. A Parser is meant to be owned by one caller at a time.
type Parser struct {
	last *Result
}

func NewParser() *Parser {
	return &Parser{}
}

// Parse parses raw and stores the result as the parser's last result.
func (p *Parser) Parse(raw string) *Result {
	p.last = Parse(raw)
	return p.last
}

// Last returns the most recently parsed result, or nil.
func (p *Parser) Last() *Result {
	return p.last
}
