package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// NumberText keeps a numeric field exactly as the client sent it. Clients
// send prices both as JSON numbers and as strings from form inputs, so the
// raw text is kept and validated before it is parsed.
type NumberText string

func (n *NumberText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumberText(strings.TrimSpace(s))
		return nil
	}

	var num json.Number
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&num); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	*n = NumberText(num.String())
	return nil
}

// EventRequest is the body of POST and PUT /api/events. Presence rules
// differ between create and update; format rules apply to both.
type EventRequest struct {
	Title            string     `json:"title" validate:"required"`
	ShortDescription string     `json:"shortDescription" validate:"required"`
	FullDescription  string     `json:"fullDescription" validate:"required"`
	Price            NumberText `json:"price" validate:"omitempty,price"`
	Date             string     `json:"date" validate:"omitempty,eventdate"`
	Category         string     `json:"category"`
	Location         string     `json:"location"`
	ImageURL         string     `json:"imageUrl"`
	Organizer        string     `json:"organizer"`
}

// EventQuery holds the filters of GET /api/events
type EventQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
}
