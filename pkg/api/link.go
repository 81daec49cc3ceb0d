package api

import (
	"fmt"
	"strings"
)

// LinkFormatMediaType is the media type of a serialized timemap.
const LinkFormatMediaType = "application/link-format"

// RedirectLinks renders the Link header value for a redirect response:
// the original resource relation, plus a timemap relation when the
// resource has a listing endpoint (timeMapURL empty means it does not).
func RedirectLinks(resource, timeMapURL string) string {
	links := fmt.Sprintf("<%s>; rel=\"original\"", resource)
	if timeMapURL != "" {
		links += fmt.Sprintf(", <%s>; rel=\"timemap\"; type=%q", timeMapURL, LinkFormatMediaType)
	}
	return links
}

// TimeMapBody serializes a timemap as a link-format document.
//
// The body always opens with the original, timegate, and self relations.
// For a non-empty timemap a single pass over the entries renders one
// memento relation each while tracking the chronologically earliest and
// latest snapshots; those become the "first memento" and "last memento"
// relations and annotate the self relation with from/until bounds. On
// equal timestamps the earlier entry wins. Relations are joined with
// ",\n" and the document ends with a newline.
func TimeMapBody(resource, timeGateURL, selfURL, dateLayout string, tm TimeMap) string {
	selfLink := fmt.Sprintf("<%s>; rel=\"self\"; type=%q", selfURL, LinkFormatMediaType)

	var mementoLinks []string
	if len(tm) > 0 {
		first, last := tm[0], tm[0]
		for _, m := range tm {
			if m.DateTime.Before(first.DateTime) {
				first = m
			} else if m.DateTime.After(last.DateTime) {
				last = m
			}
			mementoLinks = append(mementoLinks, fmt.Sprintf(
				"<%s>; rel=\"memento\"; datetime=%q", m.URI, FormatDatetime(m.DateTime, dateLayout)))
		}

		fromStr := FormatDatetime(first.DateTime, dateLayout)
		untilStr := FormatDatetime(last.DateTime, dateLayout)
		mementoLinks = append([]string{
			fmt.Sprintf("<%s>; rel=\"first memento\"; datetime=%q", first.URI, fromStr),
			fmt.Sprintf("<%s>; rel=\"last memento\"; datetime=%q", last.URI, untilStr),
		}, mementoLinks...)
		selfLink = fmt.Sprintf("%s; from=%q; until=%q", selfLink, fromStr, untilStr)
	}

	links := []string{
		fmt.Sprintf("<%s>; rel=\"original\"", resource),
		fmt.Sprintf("<%s>; rel=\"timegate\"", timeGateURL),
		selfLink,
	}
	links = append(links, mementoLinks...)
	return strings.Join(links, ",\n") + "\n"
}
