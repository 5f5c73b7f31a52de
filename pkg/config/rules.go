// pkg/config/rules.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
)

// Rules holds the cleaning ruleset: thresholds, synonym tables and column
// lists. Defaults mirror the sales schema; a YAML file can override any field.
type Rules struct {
	// Product fuzzy clustering: 0-100 similarity threshold.
	SimilarityThreshold int `yaml:"similarity_threshold"`

	// Price outlier rejection: band is [Q1-k*IQR, Q3+k*IQR].
	IQRMultiplier float64 `yaml:"iqr_multiplier"`

	// Report sampling
	RemovedKeySample    int `yaml:"removed_key_sample"`
	InconsistencySample int `yaml:"inconsistency_sample"`

	// Status synonym table: raw value -> canonical value. Case-sensitive,
	// applied after trimming. Unknown values pass through unchanged.
	StatusMap map[string]string `yaml:"status_map"`

	// Column lists per transform
	SpecialCharColumns []string `yaml:"special_char_columns"`
	TitleCaseColumns   []string `yaml:"title_case_columns"`
	NumericColumns     []string `yaml:"numeric_columns"`
	TextColumns        []string `yaml:"text_columns"`
	CategoricalColumns []string `yaml:"categorical_columns"`
	BlendFillColumns   []string `yaml:"blend_fill_columns"`

	// Default fills for residual nulls
	DefaultStatus     string `yaml:"default_status"`
	DefaultPostalCode string `yaml:"default_postal_code"`
	DefaultPayment    string `yaml:"default_payment"`

	// Accepted date layouts, tried in order
	DateLayouts []string `yaml:"date_layouts"`
}

// DefaultRules returns the embedded ruleset for the sales dataset.
func DefaultRules() *Rules {
	return &Rules{
		SimilarityThreshold: 60,
		IQRMultiplier:       1.5,
		RemovedKeySample:    10,
		InconsistencySample: 5,
		StatusMap: map[string]string{
			"Pagamento Confirmado": "Pagamento Confirmado",
			"Pgto Confirmado":      "Pagamento Confirmado",
			"PC":                   "Pagamento Confirmado",
			"Pago":                 "Pagamento Confirmado",
			"Entregue":             "Entregue",
			"Entg":                 "Entregue",
			"Entregue com Sucesso": "Entregue",
			"Em Separação":         "Em Separação",
			"Sep":                  "Em Separação",
			"Separando":            "Em Separação",
			"Aguardando Pagamento": "Aguardando Pagamento",
			"Aguardando Pgto":      "Aguardando Pagamento",
			"aguardando pagamento": "Aguardando Pagamento",
			"AP":                   "Aguardando Pagamento",
			"Em Transporte":        "Em Transporte",
			"Transp":               "Em Transporte",
			"Transportando":        "Em Transporte",
		},
		SpecialCharColumns: []string{model.ColProduct},
		TitleCaseColumns: []string{
			model.ColCustomer, model.ColProduct, model.ColStatus, model.ColCity,
			model.ColCountry, model.ColPayment, model.ColSeller, model.ColBrand,
		},
		NumericColumns: []string{
			model.ColPrice, model.ColQuantity, model.ColTotal, model.ColShipping,
		},
		TextColumns: []string{
			model.ColStatus, model.ColPostalCode, model.ColPayment,
		},
		CategoricalColumns: []string{
			model.ColProduct, model.ColBrand, model.ColSeller, model.ColCustomer,
			model.ColCountry, model.ColCity, model.ColState,
		},
		BlendFillColumns:  []string{model.ColPrice, model.ColShipping},
		DefaultStatus:     "Desconhecido",
		DefaultPostalCode: "00000-000",
		DefaultPayment:    "Não Especificado",
		DateLayouts: []string{
			"2006-01-02T15:04:05Z07:00",
			"2006-01-02 15:04:05",
			"2006-01-02",
			"02/01/2006",
			"2006/01/02",
		},
	}
}

// LoadRules returns the default ruleset overlaid with a YAML file. An empty
// path returns the defaults unchanged.
func LoadRules(path string) (*Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

// Validate ensures the ruleset is internally consistent
func (r *Rules) Validate() error {
	if r.SimilarityThreshold < 0 || r.SimilarityThreshold > 100 {
		return fmt.Errorf("similarity threshold must be in [0,100], got %d", r.SimilarityThreshold)
	}
	if r.IQRMultiplier < 0 {
		return fmt.Errorf("IQR multiplier cannot be negative")
	}
	if r.RemovedKeySample < 0 || r.InconsistencySample < 0 {
		return fmt.Errorf("report sample sizes cannot be negative")
	}
	return nil
}
