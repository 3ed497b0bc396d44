package bot

import (
	"regexp"
	"strconv"

	"raidboard/internal/model"
)

var (
	// timeReplyPattern matches a whole-message meeting time such as
	// "7:5" or "23.59". The lenient leading hour digit admits 0-29.
	timeReplyPattern = regexp.MustCompile(`^\s*([0-2]?[0-9])[:.,]([0-5]?[0-9])\s*$`)

	// subjectReplyPattern matches a whole-message bare word.
	subjectReplyPattern = regexp.MustCompile(`^\s*[a-zA-Z]+\s*$`)

	// codePattern recovers the bracketed raid code embedded in a
	// rendering's text.
	codePattern = regexp.MustCompile(`\[([a-zA-Z0-9]{8})\]`)

	// buttonPayloadPattern validates inline-button payloads.
	buttonPayloadPattern = regexp.MustCompile(`^([a-zA-Z0-9]{8}):([arf])$`)
)

const (
	opJoin        = "a"
	opLeave       = "r"
	opToggleFlyer = "f"
)

// parseTimeReply extracts the meeting time from a reply message.
func parseTimeReply(text string) (model.DayTime, bool) {
	groups := timeReplyPattern.FindStringSubmatch(text)
	if groups == nil {
		return model.DayTime{}, false
	}
	hour, err := strconv.Atoi(groups[1])
	if err != nil {
		return model.DayTime{}, false
	}
	minute, err := strconv.Atoi(groups[2])
	if err != nil {
		return model.DayTime{}, false
	}
	return model.DayTime{Hour: hour, Minute: minute}, true
}

// extractCode scans a rendering's text for its bracketed raid code.
func extractCode(text string) (string, bool) {
	groups := codePattern.FindStringSubmatch(text)
	if groups == nil {
		return "", false
	}
	return groups[1], true
}

// parseButtonPayload splits a "<code>:<op>" button payload.
func parseButtonPayload(data string) (code, op string, ok bool) {
	groups := buttonPayloadPattern.FindStringSubmatch(data)
	if groups == nil {
		return "", "", false
	}
	return groups[1], groups[2], true
}

func buttonPayload(code, op string) string {
	return code + ":" + op
}
