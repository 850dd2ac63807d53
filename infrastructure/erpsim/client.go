package erpsim

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Benjamin987Hustle/Progiciel/internal/config"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Noms des vues OData exposées par la simulation
const (
	ViewSales             = "Sales"
	ViewMarket            = "Market"
	ViewPricingConditions = "Current_Pricing_Conditions"
	ViewInventory         = "Current_Inventory"
	ViewValuation         = "Company_Valuation"
	ViewGameRules         = "Current_Game_Rules"
)

// FetchOptions limite et filtre une lecture de vue
type FetchOptions struct {
	Top     int
	Filters map[string]string
}

// ViewFetcher est le collaborateur d'accès aux données consommé par les moteurs
type ViewFetcher interface {
	FetchView(ctx context.Context, view string, opts FetchOptions) ([]Record, error)
}

// Client lit les vues OData de la simulation ERPsim
type Client struct {
	httpClient *http.Client
	cfg        config.OData
}

// NewClient crée un client OData à partir de la configuration
func NewClient(cfg config.OData) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	transport := http.DefaultTransport
	if cfg.SkipTLSVerify {
		// Le serveur de simulation présente un certificat auto-signé
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
		}
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		cfg: cfg,
	}
}

// oDataEnvelope couvre les deux formats d'enveloppe rencontrés (OData v2 et v4)
type oDataEnvelope struct {
	D struct {
		Results []Record `json:"results"`
	} `json:"d"`
	Value []Record `json:"value"`
}

// FetchView récupère les lignes d'une vue OData.
// L'erreur retournée ne doit jamais être fatale côté appelant: les moteurs
// dégradent en résultat vide (voir usecases).
func (c *Client) FetchView(ctx context.Context, view string, opts FetchOptions) ([]Record, error) {
	endpoint, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "erpsim: URL de base invalide")
	}
	endpoint.Path = path.Join(endpoint.Path, view)

	query := endpoint.Query()
	if opts.Top > 0 {
		query.Set("$top", strconv.Itoa(opts.Top))
	}
	if len(opts.Filters) > 0 {
		query.Set("$filter", buildFilter(opts.Filters))
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "erpsim: création de la requête %s", view)
	}

	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	req.Header.Set("Accept", "application/json")

	logrus.WithField("view", view).Debug("Lecture de la vue OData")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "erpsim: lecture de la vue %s", view)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("erpsim: la vue %s a répondu %s", view, resp.Status)
	}

	var envelope oDataEnvelope
	if err := jsonAPI.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, errors.Wrapf(err, "erpsim: décodage de la vue %s", view)
	}

	records := envelope.D.Results
	if records == nil {
		records = envelope.Value
	}

	logrus.WithFields(logrus.Fields{
		"view": view,
		"rows": len(records),
	}).Debug("Vue OData récupérée")

	return records, nil
}

// TestConnection vérifie l'accès au flux via une petite vue
func (c *Client) TestConnection(ctx context.Context) error {
	if _, err := c.FetchView(ctx, ViewGameRules, FetchOptions{Top: 5}); err != nil {
		return errors.Wrap(err, "erpsim: test de connexion")
	}
	return nil
}

func buildFilter(filters map[string]string) string {
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s eq '%s'", key, filters[key]))
	}
	return strings.Join(parts, " and ")
}
