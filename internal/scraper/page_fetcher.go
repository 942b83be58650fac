// Package scraper pulls job-description text out of public job-posting pages.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/gocolly/colly/v2"

	"skillgap/internal/document"
)

var (
	ErrInvalidURL = errors.New("invalid url")
	ErrEmptyPage  = errors.New("page has no readable text")

	// ErrBlockedHost wraps ErrInvalidURL so callers treat it as bad input.
	ErrBlockedHost = fmt.Errorf("%w: host resolves to a private or local address", ErrInvalidURL)
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// textSelector covers the elements job boards put posting content in.
const textSelector = "h1, h2, h3, h4, li, p"

type PageFetcher struct {
	timeout   time.Duration
	userAgent string
	// allowPrivate lifts the address guard; only tests against local servers set it.
	allowPrivate bool
}

func NewPageFetcher(timeout time.Duration) *PageFetcher {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &PageFetcher{timeout: timeout, userAgent: defaultUserAgent}
}

// Fetch visits rawURL and returns its heading, paragraph and list text,
// cleaned the same way uploaded documents are. Hosts that resolve to
// loopback, private, link-local, multicast or unspecified addresses are
// refused with ErrBlockedHost, both up front and at dial time so redirects
// cannot reach them either.
func (f *PageFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return "", ErrInvalidURL
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if !f.allowPrivate {
		if err := checkHost(ctx, u.Hostname()); err != nil {
			return "", err
		}
	}

	c := colly.NewCollector(
		colly.AllowedDomains(u.Hostname()),
		colly.UserAgent(f.userAgent),
	)
	if !f.allowPrivate {
		c.WithTransport(guardedTransport(f.timeout))
	}
	c.SetRequestTimeout(f.timeout)
	if err := c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 1, RandomDelay: 250 * time.Millisecond}); err != nil {
		return "", fmt.Errorf("limit rule: %w", err)
	}

	var parts []string
	var reqErr error

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})

	c.OnHTML(textSelector, func(e *colly.HTMLElement) {
		// The enclosing match already carries this element's text.
		if e.DOM.ParentsFiltered(textSelector).Length() > 0 {
			return
		}
		if t := strings.TrimSpace(e.Text); t != "" {
			parts = append(parts, t)
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			reqErr = fmt.Errorf("fetch %s: status %d: %w", u.String(), r.StatusCode, err)
			return
		}
		reqErr = fmt.Errorf("fetch %s: %w", u.String(), err)
	})

	if err := c.Visit(u.String()); err != nil && reqErr == nil {
		return "", fmt.Errorf("fetch %s: %w", u.String(), err)
	}
	c.Wait()
	if reqErr != nil {
		return "", reqErr
	}

	text := document.Clean(strings.Join(parts, "\n"))
	if text == "" {
		return "", ErrEmptyPage
	}
	return text, nil
}

func checkHost(ctx context.Context, host string) error {
	if ip := net.ParseIP(host); ip != nil {
		if blockedIP(ip) {
			return ErrBlockedHost
		}
		return nil
	}
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", host, err)
	}
	for _, a := range addrs {
		if blockedIP(a.IP) {
			return ErrBlockedHost
		}
	}
	return nil
}

func guardedTransport(timeout time.Duration) *http.Transport {
	dialer := &net.Dialer{
		Timeout: timeout,
		Control: func(_, address string, _ syscall.RawConn) error {
			host, _, err := net.SplitHostPort(address)
			if err != nil {
				return err
			}
			if ip := net.ParseIP(host); ip == nil || blockedIP(ip) {
				return ErrBlockedHost
			}
			return nil
		},
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		MaxIdleConns:          10,
		IdleConnTimeout:       30 * time.Second,
	}
}

func blockedIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast() ||
		ip.IsUnspecified()
}
