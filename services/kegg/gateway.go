package kegg

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"genoscope/api/models"
	"genoscope/api/models/conditions"
	"genoscope/api/utils"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const serviceName = "KEGG"

type (
	Pathway struct {
		Pathway     string `json:"pathway"`
		Description string `json:"description"`
	}

	GenePathways struct {
		GeneId   string    `json:"geneId"`
		Pathways []Pathway `json:"pathways"`
	}

	PathwayImage struct {
		PathwayId   string
		ContentType string
		Payload     []byte
	}

	// Gateway is a thin pass-through to the KEGG REST API
	Gateway struct {
		baseUrl     string
		organism    string
		maxRetries  uint64
		concurrency int
		client      *http.Client
		logger      *zap.Logger
	}
)

func NewGateway(cfg *models.Config, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}

	concurrency := cfg.Kegg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Gateway{
		baseUrl:     strings.TrimRight(cfg.Kegg.Url, "/"),
		organism:    cfg.Kegg.Organism,
		maxRetries:  cfg.Kegg.MaxRetries,
		concurrency: concurrency,
		client:      utils.CreateHttpClient(time.Duration(cfg.Kegg.TimeoutSeconds) * time.Second),
		logger:      logger,
	}
}

// GeneId prefixes a gene symbol with the organism code ("TP53" -> "hsa:TP53")
func (g *Gateway) GeneId(gene string) string {
	return fmt.Sprintf("%s:%s", g.organism, strings.TrimSpace(gene))
}

// PathwaysForGene lists the pathways linked to a gene along with
// each pathway's name
func (g *Gateway) PathwaysForGene(ctx context.Context, gene string) (*GenePathways, error) {
	geneId := g.GeneId(gene)

	body, _, err := g.get(ctx, "link", "pathway", geneId)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, conditions.ErrGeneNotFound
		}
		return nil, err
	}

	pathwayIds := ParseLinkResponse(body)
	if len(pathwayIds) == 0 {
		return nil, conditions.ErrGeneNotFound
	}

	pathways := make([]Pathway, len(pathwayIds))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)

	for i, pathwayId := range pathwayIds {
		i, pathwayId := i, pathwayId
		eg.Go(func() error {
			entry, _, err := g.get(egCtx, "get", pathwayId)
			if err != nil {
				return err
			}
			pathways[i] = Pathway{Pathway: pathwayId, Description: ParseEntryName(entry)}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	g.logger.Debug("resolved pathways",
		zap.String("geneId", geneId),
		zap.Int("pathways", len(pathways)))

	return &GenePathways{GeneId: geneId, Pathways: pathways}, nil
}

// PathwayImage fetches the pathway map image ("path:hsa04010" or "hsa04010")
func (g *Gateway) PathwayImage(ctx context.Context, pathwayId string) (*PathwayImage, error) {
	id := strings.TrimPrefix(strings.TrimSpace(pathwayId), "path:")

	payload, contentType, err := g.get(ctx, "get", id, "image")
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, conditions.ErrPathwayNotFound
		}
		return nil, err
	}
	if len(payload) == 0 {
		return nil, conditions.ErrPathwayNotFound
	}

	if contentType == "" || !strings.HasPrefix(contentType, "image/") {
		contentType = "image/png"
	}

	return &PathwayImage{PathwayId: id, ContentType: contentType, Payload: payload}, nil
}

// ParseLinkResponse extracts the target column of a KEGG /link response
// ("hsa:7157\tpath:hsa04010" lines)
func ParseLinkResponse(body []byte) []string {
	ids := []string{}
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		columns := strings.Split(strings.TrimSpace(scanner.Text()), "\t")
		if len(columns) < 2 || strings.TrimSpace(columns[1]) == "" {
			continue
		}
		ids = append(ids, strings.TrimSpace(columns[1]))
	}
	return ids
}

// ParseEntryName returns the NAME field of a KEGG flat-file entry
func ParseEntryName(body []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "NAME") {
			return strings.TrimSpace(strings.TrimPrefix(line, "NAME"))
		}
	}
	return ""
}

var errNotFound = errors.New("not found")

// get issues a GET against the KEGG API, retrying transport errors and
// 429/5xx responses with exponential backoff
func (g *Gateway) get(ctx context.Context, segments ...string) ([]byte, string, error) {
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	target := fmt.Sprintf("%s/%s", g.baseUrl, strings.Join(escaped, "/"))

	var (
		body        []byte
		contentType string
	)

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		res, err := g.client.Do(req)
		if err != nil {
			g.logger.Warn("kegg request failed", zap.String("url", target), zap.Error(err))
			return &conditions.UpstreamError{Service: serviceName, Err: err}
		}
		defer res.Body.Close()

		payload, err := io.ReadAll(res.Body)
		if err != nil {
			return &conditions.UpstreamError{Service: serviceName, Err: err}
		}

		switch {
		case res.StatusCode == http.StatusOK:
			body = payload
			contentType = res.Header.Get("Content-Type")
			return nil
		case res.StatusCode == http.StatusNotFound || res.StatusCode == http.StatusBadRequest:
			// KEGG answers unknown identifiers with 400 or 404
			return backoff.Permanent(errNotFound)
		case utils.IsRetryableStatus(res.StatusCode) || res.StatusCode >= 500:
			g.logger.Warn("kegg responded with a retryable status",
				zap.String("url", target), zap.Int("status", res.StatusCode))
			return &conditions.UpstreamError{Service: serviceName, Status: res.StatusCode, Err: errors.New(res.Status)}
		default:
			return backoff.Permanent(&conditions.UpstreamError{Service: serviceName, Status: res.StatusCode, Err: errors.New(res.Status)})
		}
	}

	if err := backoff.Retry(operation, utils.NewRetryBackoff(ctx, g.maxRetries)); err != nil {
		var upstream *conditions.UpstreamError
		if errors.Is(err, errNotFound) || errors.As(err, &upstream) {
			return nil, "", err
		}
		return nil, "", &conditions.UpstreamError{Service: serviceName, Err: err}
	}

	return body, contentType, nil
}
