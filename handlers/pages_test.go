// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"

	"github.com/danielhkuo/today-i-learned/session"
	"github.com/danielhkuo/today-i-learned/testutil"
)

func newPageHandler(t *testing.T, sessions *session.Manager) *PageHandler {
	t.Helper()
	tmpl, err := ParseTemplates()
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}
	return NewPageHandler(sessions, tmpl, time.Second)
}

func formRequest(path string, values url.Values, htmx bool) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return req
}

func assertContains(t *testing.T, body string, want ...string) {
	t.Helper()
	for _, s := range want {
		if !strings.Contains(body, s) {
			t.Errorf("Expected body to contain %q", s)
		}
	}
}

// listedFacts walks the rendered page and returns the ids and texts of the
// fact rows in document order
func listedFacts(t *testing.T, body string) (ids []string, texts []string) {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to parse page: %v", err)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" && attr(n, "class") == "fact" {
			ids = append(ids, strings.TrimPrefix(attr(n, "id"), "fact-"))
			texts = append(texts, rowText(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return ids, texts
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// rowText is the text directly inside the first paragraph of a row
func rowText(li *html.Node) string {
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "p" {
			continue
		}
		var sb strings.Builder
		for t := c.FirstChild; t != nil; t = t.NextSibling {
			if t.Type == html.TextNode {
				sb.WriteString(t.Data)
			}
		}
		return strings.TrimSpace(sb.String())
	}
	return ""
}

func hasElement(t *testing.T, body, tag string) bool {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("Failed to parse page: %v", err)
	}

	var found bool
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			found = true
		}
		for c := n.FirstChild; c != nil && !found; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

func TestIndex(t *testing.T) {
	sessions, conn := newSessions(t)
	seedFacts(t, conn)
	h := newPageHandler(t, sessions)

	w, _ := serve(h.Index, httptest.NewRequest("GET", "/", nil), nil)

	testutil.AssertStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected text/html, got %q", ct)
	}

	body := w.Body.String()
	assertContains(t, body,
		"<title>Today I Learned</title>",
		"Share a fact",
		"Honey never spoils",
		"[⛔ DISPUTED]",
		"There are 2 facts in the database. Add your own!",
		"👍 10",
		"🤯 2",
		`class="source" href="http://example.com"`,
		"#16a34a",
	)
	if strings.Count(body, "[⛔ DISPUTED]") != 1 {
		t.Error("Expected exactly one disputed fact")
	}
	if strings.Contains(body, `class="fact-form"`) {
		t.Error("Expected form hidden initially")
	}

	ids, texts := listedFacts(t, body)
	if len(ids) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(ids))
	}
	if texts[0] != "Honey never spoils" {
		t.Errorf("Expected most interesting fact first, got %q", texts[0])
	}
}

func TestIndexEmpty(t *testing.T) {
	sessions, _ := newSessions(t)
	h := newPageHandler(t, sessions)

	w, _ := serve(h.Index, httptest.NewRequest("GET", "/", nil), nil)

	testutil.AssertStatus(t, w, http.StatusOK)
	assertContains(t, w.Body.String(), "No facts yet! Create the first one.")
}

func TestEmptyCategoryNamesFilter(t *testing.T) {
	sessions, conn := newSessions(t)
	seedFacts(t, conn)
	h := newPageHandler(t, sessions)

	w, _ := serve(h.SetCategory, formRequest("/category", url.Values{"category": {"history"}}, true), nil)

	testutil.AssertStatus(t, w, http.StatusOK)
	assertContains(t, w.Body.String(), "No facts for history yet! Create the first one.")
	if ids, _ := listedFacts(t, w.Body.String()); len(ids) != 0 {
		t.Errorf("Expected no rows, got %v", ids)
	}
}

func TestPageRespondsByRequestKind(t *testing.T) {
	tests := []struct {
		name           string
		htmx           bool
		expectedStatus int
	}{
		{"plain form post redirects", false, http.StatusSeeOther},
		{"htmx gets fragment", true, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, _ := newSessions(t)
			h := newPageHandler(t, sessions)

			w, _ := serve(h.ToggleForm, formRequest("/form/toggle", url.Values{}, tt.htmx), nil)
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if !tt.htmx {
				if loc := w.Header().Get("Location"); loc != "/" {
					t.Errorf("Expected redirect to /, got %q", loc)
				}
				return
			}

			body := w.Body.String()
			assertContains(t, body, `id="app"`, `class="fact-form"`, "Close", `value="http://example.com"`, "<span>200</span>")
			if strings.Contains(body, "<html") {
				t.Error("Expected a fragment, not a full page")
			}
		})
	}
}

func TestSetCategoryPage(t *testing.T) {
	sessions, conn := newSessions(t)
	seedFacts(t, conn)
	h := newPageHandler(t, sessions)

	w, _ := serve(h.SetCategory, formRequest("/category", url.Values{"category": {"society"}}, true), nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	body := w.Body.String()
	assertContains(t, body, "Goldfish have a three second memory", "There are 1 facts")
	if strings.Contains(body, "Honey never spoils") {
		t.Error("Expected science fact filtered out")
	}

	w, _ = serve(h.SetCategory, formRequest("/category", url.Values{"category": {"sports"}}, true), nil)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestSubmitPage(t *testing.T) {
	sessions, conn := newSessions(t)
	seedFacts(t, conn)
	h := newPageHandler(t, sessions)

	_, cookie := serve(h.ToggleForm, formRequest("/form/toggle", url.Values{}, true), nil)

	// Invalid input is kept in the form and nothing is stored
	invalid := url.Values{"text": {"Too vague"}, "source": {"not-a-url"}, "category": {"news"}}
	w, _ := serve(h.Submit, formRequest("/facts", invalid, true), cookie)
	testutil.AssertStatus(t, w, http.StatusOK)
	assertContains(t, w.Body.String(), `value="Too vague"`, `value="not-a-url"`, "<span>191</span>")
	if n := testutil.CountFacts(t, conn); n != 2 {
		t.Fatalf("Expected no insert, got %d rows", n)
	}

	valid := url.Values{"text": {"Octopuses have three hearts"}, "source": {"https://example.org/octopus"}, "category": {"science"}}
	w, _ = serve(h.Submit, formRequest("/facts", valid, false), cookie)
	testutil.AssertStatus(t, w, http.StatusSeeOther)
	if n := testutil.CountFacts(t, conn); n != 3 {
		t.Fatalf("Expected 3 rows, got %d", n)
	}

	w, _ = serve(h.Index, httptest.NewRequest("GET", "/", nil), cookie)
	body := w.Body.String()
	if strings.Contains(body, `class="fact-form"`) {
		t.Error("Expected form closed after submit")
	}
	_, texts := listedFacts(t, body)
	if len(texts) != 3 || texts[0] != "Octopuses have three hearts" {
		t.Errorf("Expected new fact at the top of the list, got %q", texts)
	}
}

func TestSubmitPageEscapesText(t *testing.T) {
	sessions, _ := newSessions(t)
	h := newPageHandler(t, sessions)

	_, cookie := serve(h.Index, httptest.NewRequest("GET", "/", nil), nil)

	text := "<script>alert(1)</script> is not a fact"
	req := formRequest("/facts", url.Values{"text": {text}, "source": {"https://example.org"}, "category": {"news"}}, true)
	w, _ := serve(h.Submit, req, cookie)
	testutil.AssertStatus(t, w, http.StatusOK)

	body := w.Body.String()
	if hasElement(t, body, "script") {
		t.Error("Expected fact text to be escaped")
	}
	if _, texts := listedFacts(t, body); len(texts) != 1 || texts[0] != text {
		t.Errorf("Expected the text shown verbatim, got %q", texts)
	}
}

func TestVotePage(t *testing.T) {
	sessions, conn := newSessions(t)
	top, _ := seedFacts(t, conn)
	h := newPageHandler(t, sessions)

	_, cookie := serve(h.Index, httptest.NewRequest("GET", "/", nil), nil)

	tests := []struct {
		name           string
		id             string
		counter        string
		expectedStatus int
	}{
		{"mindblowing", strconv.FormatInt(top.ID, 10), "mindblowing", http.StatusOK},
		{"field name accepted", strconv.FormatInt(top.ID, 10), "votesInteresting", http.StatusOK},
		{"unknown counter", strconv.FormatInt(top.ID, 10), "boring", http.StatusBadRequest},
		{"invalid id", "abc", "false", http.StatusBadRequest},
		{"fact not listed still renders", "9999", "false", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := formRequest("/facts/"+tt.id+"/vote/"+tt.counter, url.Values{}, true)
			req.SetPathValue("id", tt.id)
			req.SetPathValue("counter", tt.counter)

			w, _ := serve(h.Vote, req, cookie)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	w, _ := serve(h.Index, httptest.NewRequest("GET", "/", nil), cookie)
	assertContains(t, w.Body.String(), "👍 11", "🤯 3")
}

func TestAlertBanner(t *testing.T) {
	cfg := testutil.GetTestConfig()
	sessions := session.NewManager(failingStore{}, cfg.SessionSalt, cfg.SessionTTL, cfg.RequestTimeout)
	h := newPageHandler(t, sessions)

	w, cookie := serve(h.Index, httptest.NewRequest("GET", "/", nil), nil)
	assertContains(t, w.Body.String(), `role="alert"`, "There was a problem getting data")

	// Shown once
	w, _ = serve(h.Index, httptest.NewRequest("GET", "/", nil), cookie)
	if strings.Contains(w.Body.String(), `role="alert"`) {
		t.Error("Expected alert to be shown only once")
	}

	req := formRequest("/facts", url.Values{"text": {"fact"}, "source": {"http://example.com"}, "category": {"news"}}, true)
	w, _ = serve(h.Submit, req, cookie)
	assertContains(t, w.Body.String(), "There was a problem sharing your fact")
}

func TestStyle(t *testing.T) {
	sessions, _ := newSessions(t)
	h := newPageHandler(t, sessions)

	w := httptest.NewRecorder()
	h.Style(w, httptest.NewRequest("GET", "/static/style.css", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("Expected text/css, got %q", ct)
	}
	assertContains(t, w.Body.String(), ".vote-buttons")
}
