package mars

import (
	"io"
)

// ParseRequests parses every request in r and returns them in order. If
// strict is true, any malformed request aborts the whole parse; if false,
// parsing best-effort skips to the next recognizable verb after an error.
//
// Grammar (EBNF):
//
//	requests   = { request } ;
//	request    = verb { "," keyword "=" valuelist } ;
//	valuelist  = value { "/" value } ;
//	value      = word | quoted-string ;
//	verb       = word ;
//	keyword    = word ;
//
// The original parser's implementation contained a duplicated outer
// "while not eof" loop around the per-request loop; this parser collapses
// that into the single top-level loop above.
func ParseRequests(r io.Reader, strict bool) ([]*Request, error) {
	tok := NewTokenizer(r)
	var requests []*Request
	for {
		if _, err := tok.Peek(true); err == io.EOF {
			break
		} else if err != nil {
			return requests, err
		}
		req, err := parseOneRequest(tok)
		if err != nil {
			if strict {
				return requests, err
			}
			if !skipToNextVerb(tok) {
				break
			}
			continue
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// ParseRequest parses exactly one request from r.
func ParseRequest(r io.Reader) (*Request, error) {
	tok := NewTokenizer(r)
	return parseOneRequest(tok)
}

func parseOneRequest(tok *Tokenizer) (*Request, error) {
	verb, err := tok.Word()
	if err != nil {
		return nil, err
	}
	req := NewRequest(verb)
	for {
		r, err := tok.Peek(true)
		if err == io.EOF || r != ',' {
			break
		}
		_, _ = tok.Next(true) // consume ','
		key, err := tok.Word()
		if err != nil {
			return nil, err
		}
		if err := tok.Consume('='); err != nil {
			return nil, err
		}
		values, err := parseValueList(tok)
		if err != nil {
			return nil, err
		}
		req.SetValues(key, values, nil)
	}
	return req, nil
}

func parseValueList(tok *Tokenizer) ([]string, error) {
	var values []string
	for {
		v, err := parseValue(tok)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		r, err := tok.Peek(true)
		if err == io.EOF || r != '/' {
			break
		}
		_, _ = tok.Next(true) // consume '/'
	}
	return values, nil
}

func parseValue(tok *Tokenizer) (string, error) {
	r, err := tok.Peek(true)
	if err != nil {
		return "", err
	}
	if r == '"' {
		_, _ = tok.Next(true) // consume opening quote
		return tok.QuotedString()
	}
	return tok.Word()
}

// skipToNextVerb discards input up to (but not including) the next token
// that looks like the start of a request, used for best-effort recovery
// when strict parsing is disabled. Returns false at EOF.
func skipToNextVerb(tok *Tokenizer) bool {
	atLineStart := false
	for {
		r, err := tok.Next(false)
		if err != nil {
			return false
		}
		if r == '\n' {
			atLineStart = true
			continue
		}
		if atLineStart && isIdentRune(r) {
			tok.unread(r)
			return true
		}
		if r != ' ' && r != '\t' && r != '\r' {
			atLineStart = false
		}
	}
}
