package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/zeitgate-dev/zeitgate/pkg/api"
)

// writeRedirect sends the point lookup response: a 302 to the chosen
// memento with an empty body. Vary signals that the outcome depends on
// Accept-Datetime, and Connection: close keeps intermediaries from
// reusing the negotiated exchange.
func writeRedirect(w http.ResponseWriter, res *api.GateResult) {
	h := w.Header()
	h.Set("Date", time.Now().UTC().Format(http.TimeFormat))
	h.Set("Vary", "accept-datetime")
	h.Set("Content-Length", "0")
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("Connection", "close")
	h.Set("Location", res.Memento.URI)
	h.Set("Link", api.RedirectLinks(res.Resource, res.TimeMapURL))
	w.WriteHeader(http.StatusFound)
}

// writeTimeMap sends the timeline listing response as a link-format
// document. HEAD requests get identical headers and no body.
func writeTimeMap(w http.ResponseWriter, r *http.Request, res *api.MapResult, dateLayout string) {
	body := api.TimeMapBody(res.Resource, res.TimeGateURL, res.SelfURL, dateLayout, res.TimeMap)

	h := w.Header()
	h.Set("Date", time.Now().UTC().Format(http.TimeFormat))
	h.Set("Content-Length", strconv.Itoa(len(body)))
	h.Set("Content-Type", api.LinkFormatMediaType)
	h.Set("Connection", "close")
	w.WriteHeader(http.StatusOK)

	if r.Method != http.MethodHead {
		w.Write([]byte(body))
	}
}
