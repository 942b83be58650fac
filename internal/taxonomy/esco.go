// Package taxonomy looks up canonical skill labels in the ESCO classification.
package taxonomy

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// ICTSkillGroups restricts searches to ESCO's ICT-related skill groups.
var ICTSkillGroups = []string{
	"94", "158", "157", "51", "265", "123", "262", "160", "159", "161",
	"162", "163", "164", "125", "126", "266", "285", "356", "261",
}

type Result struct {
	Label string
	URI   string
}

// Searcher finds the best taxonomy entry for a free-text skill.
type Searcher interface {
	Search(ctx context.Context, text string) (Result, bool)
}

type Options struct {
	BaseURL     string
	Timeout     time.Duration
	RPS         float64
	SkillGroups []string
	Logger      *log.Logger
	HTTPClient  *http.Client
}

type ESCOClient struct {
	http    *resty.Client
	limiter *rate.Limiter
	groups  string
	logger  *log.Logger
}

func NewESCOClient(opts Options) *ESCOClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if len(opts.SkillGroups) == 0 {
		opts.SkillGroups = ICTSkillGroups
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	var rc *resty.Client
	if opts.HTTPClient != nil {
		rc = resty.NewWithClient(opts.HTTPClient)
	} else {
		rc = resty.New()
	}
	rc.SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json")

	limit := rate.Inf
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}

	return &ESCOClient{
		http:    rc,
		limiter: rate.NewLimiter(limit, 1),
		groups:  strings.Join(opts.SkillGroups, ","),
		logger:  opts.Logger,
	}
}

// Search returns the first ESCO skill result for text. Any failure, from
// transport errors to an empty result list, is reported as no match.
func (c *ESCOClient) Search(ctx context.Context, text string) (Result, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, false
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return Result{}, false
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"text":          text,
			"type":          "skill",
			"language":      "en",
			"skillGroupIds": c.groups,
		}).
		Get("/search")
	if err != nil {
		c.logger.Printf("taxonomy=esco status=error text=%q err=%v", text, err)
		return Result{}, false
	}
	if resp.StatusCode() != http.StatusOK {
		c.logger.Printf("taxonomy=esco status=http_%d text=%q", resp.StatusCode(), text)
		return Result{}, false
	}

	return parseSearch(resp.Body())
}

func parseSearch(body []byte) (Result, bool) {
	if !gjson.ValidBytes(body) {
		return Result{}, false
	}
	first := gjson.GetBytes(body, "_embedded.results.0")
	if !first.Exists() {
		return Result{}, false
	}

	label := first.Get(`preferredLabel.en-us`).String()
	if label == "" {
		label = first.Get("preferredLabel.en").String()
	}
	if label == "" {
		return Result{}, false
	}
	return Result{Label: label, URI: first.Get("uri").String()}, true
}
