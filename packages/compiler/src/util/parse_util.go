package util

import (
	"fmt"
)

// ParseLocation represents a location in the source file
type ParseLocation struct {
	File   *ParseSourceFile
	Offset int
	Line   int
	Col    int
}

// NewParseLocation creates a new ParseLocation
func NewParseLocation(file *ParseSourceFile, offset, line, col int) *ParseLocation {
	return &ParseLocation{
		File:   file,
		Offset: offset,
		Line:   line,
		Col:    col,
	}
}

// String returns a string representation of the location
func (p *ParseLocation) String() string {
	url := ""
	if p.File != nil {
		url = p.File.URL
	}
	if p.Offset >= 0 {
		return fmt.Sprintf("%s@%d:%d", url, p.Line, p.Col)
	}
	return url
}

// ParseSourceFile represents a source file
type ParseSourceFile struct {
	Content string
	URL     string
}

// NewParseSourceFile creates a new ParseSourceFile
func NewParseSourceFile(content, url string) *ParseSourceFile {
	return &ParseSourceFile{
		Content: content,
		URL:     url,
	}
}

// ParseSourceSpan represents a span of source code
type ParseSourceSpan struct {
	Start *ParseLocation
	End   *ParseLocation
}

// NewParseSourceSpan creates a new ParseSourceSpan
func NewParseSourceSpan(start, end *ParseLocation) *ParseSourceSpan {
	return &ParseSourceSpan{
		Start: start,
		End:   end,
	}
}

// String returns the source code in this span
func (p *ParseSourceSpan) String() string {
	if p == nil || p.Start == nil || p.End == nil || p.Start.File == nil {
		return ""
	}
	content := p.Start.File.Content
	if p.Start.Offset < 0 || p.End.Offset > len(content) || p.Start.Offset > p.End.Offset {
		return ""
	}
	return content[p.Start.Offset:p.End.Offset]
}

// DiagnosticSeverity represents the severity of a Diagnostic
type DiagnosticSeverity int

const (
	DiagnosticSeverityWarning DiagnosticSeverity = iota
	DiagnosticSeverityError
)

// String returns the lower-case severity name
func (s DiagnosticSeverity) String() string {
	if s == DiagnosticSeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a finding attached to a node by a lowering pass.
type Diagnostic struct {
	Code     string
	Severity DiagnosticSeverity
	Message  string
	Span     *ParseSourceSpan
}

// NewDiagnostic creates a new error Diagnostic
func NewDiagnostic(code string, span *ParseSourceSpan, msg string) *Diagnostic {
	return &Diagnostic{
		Code:     code,
		Severity: DiagnosticSeverityError,
		Message:  msg,
		Span:     span,
	}
}

// NewWarning creates a new warning Diagnostic
func NewWarning(code string, span *ParseSourceSpan, msg string) *Diagnostic {
	return &Diagnostic{
		Code:     code,
		Severity: DiagnosticSeverityWarning,
		Message:  msg,
		Span:     span,
	}
}

// Error implements the error interface
func (d *Diagnostic) Error() string {
	return d.String()
}

// String returns a string representation of the diagnostic
func (d *Diagnostic) String() string {
	if d.Span == nil || d.Span.Start == nil {
		return fmt.Sprintf("%s %s: %s", d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s %s: %s", d.Span.Start, d.Severity, d.Code, d.Message)
}
