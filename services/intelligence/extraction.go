package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"washdesk/models"
)

var errTruncatedBlock = errors.New("booking block has no end marker")

// Extraction is the result of scanning assistant text for a booking block.
type Extraction struct {
	// Reply is the text to show the customer, with every booking block removed.
	Reply string
	// Payload is the first block that parsed, if any.
	Payload *models.BookingPayload
	// Found reports whether the text contained a begin marker at all.
	Found bool
	// Err describes why no payload was produced although Found is true.
	Err error
}

// ParseExtraction locates booking blocks delimited by BookingDataBegin and
// BookingDataEnd. Only the first block that parses yields a payload; all
// blocks are stripped from the reply. A begin marker without an end marker
// strips the rest of the text.
func ParseExtraction(text string) Extraction {
	if !strings.Contains(text, models.BookingDataBegin) {
		return Extraction{Reply: text}
	}

	var (
		segments []string
		bodies   []string
		truncErr error
	)
	rest := text
	for {
		i := strings.Index(rest, models.BookingDataBegin)
		if i < 0 {
			segments = append(segments, rest)
			break
		}
		segments = append(segments, rest[:i])
		after := rest[i+len(models.BookingDataBegin):]
		j := strings.Index(after, models.BookingDataEnd)
		if j < 0 {
			truncErr = errTruncatedBlock
			segments = append(segments, "")
			break
		}
		bodies = append(bodies, after[:j])
		rest = after[j+len(models.BookingDataEnd):]
	}

	out := Extraction{Found: true, Reply: stitch(segments)}
	var firstErr error
	for _, body := range bodies {
		p, err := parsePayload(body)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		out.Payload = p
		break
	}
	if out.Payload == nil {
		out.Err = firstErr
		if out.Err == nil {
			out.Err = truncErr
		}
	}
	return out
}

// stitch joins the text around removed blocks. Each seam becomes a single
// space, or a newline when the removed region crossed a line break.
func stitch(segments []string) string {
	result := ""
	for k, seg := range segments {
		seg = strings.ReplaceAll(seg, models.BookingDataEnd, "")
		if k == 0 {
			result = seg
			continue
		}
		left := strings.TrimRightFunc(result, unicode.IsSpace)
		right := strings.TrimLeftFunc(seg, unicode.IsSpace)
		switch {
		case left == "":
			result = right
		case right == "":
			result = left
		default:
			gap := result[len(left):] + seg[:len(seg)-len(right)]
			sep := " "
			if strings.Contains(gap, "\n") {
				sep = "\n"
			}
			result = left + sep + right
		}
	}
	return strings.TrimSpace(result)
}

// parsePayload decodes one block body. The body must be a single flat JSON
// object whose values are strings; numbers are kept as their literal text.
func parsePayload(body string) (*models.BookingPayload, error) {
	s := stripCodeFence(strings.TrimSpace(body))
	if s == "" {
		return nil, errors.New("booking block is empty")
	}

	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode booking block: %w", err)
	}
	if raw == nil {
		return nil, errors.New("booking block is not a JSON object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("booking block has trailing data")
	}

	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		key := strings.ToLower(k)
		if _, dup := fields[key]; dup {
			return nil, fmt.Errorf("booking block repeats field %q with different case", key)
		}
		switch t := v.(type) {
		case string:
			fields[key] = t
		case json.Number:
			fields[key] = t.String()
		default:
			return nil, fmt.Errorf("booking block field %q is not a string", k)
		}
	}

	return &models.BookingPayload{
		Name:    fields["name"],
		Email:   fields["email"],
		Phone:   fields["phone"],
		Service: fields["service"],
		Date:    fields["date"],
		Time:    fields["time"],
		Address: fields["address"],
	}, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.Contains(s[:nl], "{") {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}
