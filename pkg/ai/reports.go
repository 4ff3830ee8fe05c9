package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kicharme.com.br/storefront/pkg/models"
)

// ReportResponse is the envelope for AI-generated admin reports.
type ReportResponse struct {
	Status      string     `json:"status"`
	Data        ReportData `json:"data"`
	GeneratedAt time.Time  `json:"generated_at"`
	AIEnabled   bool       `json:"ai_enabled"`
}

type ReportData struct {
	RawData    interface{} `json:"raw_data"`
	AIInsights string      `json:"ai_insights,omitempty"`
	Summary    string      `json:"summary"`
	Error      string      `json:"error,omitempty"`
}

// CatalogSummary is the raw stock snapshot fed to the model and returned to
// the caller alongside the insights.
type CatalogSummary struct {
	TotalProducts     int      `json:"total_products"`
	OutOfStock        []string `json:"out_of_stock"`
	ExhaustedVariants []string `json:"exhausted_variants"`
	Featured          []string `json:"featured"`
	Brands            int      `json:"brands"`
	Categories        int      `json:"categories"`
}

// GenerateCatalogReport builds a stock-state report over the loaded catalog.
func GenerateCatalogReport(ctx context.Context, products []models.Product) (*ReportResponse, error) {
	summary := summarizeCatalog(products)
	response := &ReportResponse{
		Status:      "success",
		GeneratedAt: time.Now(),
		AIEnabled:   IsEnabled(),
		Data: ReportData{
			RawData: summary,
			Summary: "Catalog stock snapshot",
		},
	}

	if !IsEnabled() {
		response.Data.Summary = "Catalog stock snapshot (AI insights unavailable)"
		return response, nil
	}

	insights, err := generateCompletion(ctx, CatalogReportSystemPrompt, formatCatalogPrompt(summary))
	if err != nil {
		response.Data.Error = "AI analysis failed: " + err.Error()
		return response, nil
	}
	response.Data.AIInsights = insights
	response.Data.Summary = "AI-generated catalog insights"
	return response, nil
}

// DiscountFinding describes one product's tier configuration, with risk
// flags surfaced before the model sees them.
type DiscountFinding struct {
	ProductID     string                `json:"product_id"`
	ProductName   string                `json:"product_name"`
	Price         float64               `json:"price"`
	Tiers         []models.DiscountTier `json:"tiers"`
	NegativeRisk  bool                  `json:"negative_risk"`
	VariantsCount int                   `json:"variants_count"`
}

// GenerateDiscountReport reviews the tier configuration of every product
// carrying discounts.
func GenerateDiscountReport(ctx context.Context, products []models.Product) (*ReportResponse, error) {
	findings := summarizeDiscounts(products)
	response := &ReportResponse{
		Status:      "success",
		GeneratedAt: time.Now(),
		AIEnabled:   IsEnabled(),
		Data: ReportData{
			RawData: findings,
			Summary: "Discount tier configuration",
		},
	}

	if !IsEnabled() {
		response.Data.Summary = "Discount tier configuration (AI insights unavailable)"
		return response, nil
	}

	insights, err := generateCompletion(ctx, DiscountReportSystemPrompt, formatDiscountPrompt(findings))
	if err != nil {
		response.Data.Error = "AI analysis failed: " + err.Error()
		return response, nil
	}
	response.Data.AIInsights = insights
	response.Data.Summary = "AI-generated discount insights"
	return response, nil
}

func summarizeCatalog(products []models.Product) CatalogSummary {
	summary := CatalogSummary{TotalProducts: len(products)}
	brands := map[string]bool{}
	categories := map[string]bool{}
	for i := range products {
		p := &products[i]
		brands[p.Brand] = true
		categories[p.Category] = true
		if p.IsOutOfStock() {
			summary.OutOfStock = append(summary.OutOfStock, p.Name)
		}
		if p.Featured {
			summary.Featured = append(summary.Featured, p.Name)
		}
		for _, v := range p.Variants {
			if v.OutOfStock {
				summary.ExhaustedVariants = append(summary.ExhaustedVariants, p.Name+" "+v.Name)
			}
		}
	}
	summary.Brands = len(brands)
	summary.Categories = len(categories)
	return summary
}

func summarizeDiscounts(products []models.Product) []DiscountFinding {
	var findings []DiscountFinding
	for _, p := range products {
		if len(p.Discounts) == 0 {
			continue
		}
		finding := DiscountFinding{
			ProductID:     p.ID,
			ProductName:   p.Name,
			Price:         p.Price,
			Tiers:         p.Discounts,
			VariantsCount: len(p.Variants),
		}
		for _, tier := range p.Discounts {
			if tier.Type == models.DiscountValue && tier.Value >= p.Price {
				finding.NegativeRisk = true
			}
		}
		findings = append(findings, finding)
	}
	return findings
}

func formatCatalogPrompt(s CatalogSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Catalog: %d products across %d brands and %d categories.\n", s.TotalProducts, s.Brands, s.Categories)
	fmt.Fprintf(&b, "Out of stock (%d): %s\n", len(s.OutOfStock), strings.Join(s.OutOfStock, ", "))
	fmt.Fprintf(&b, "Exhausted variants (%d): %s\n", len(s.ExhaustedVariants), strings.Join(s.ExhaustedVariants, ", "))
	fmt.Fprintf(&b, "Featured: %s\n", strings.Join(s.Featured, ", "))
	return b.String()
}

func formatDiscountPrompt(findings []DiscountFinding) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d products carry discount tiers.\n", len(findings))
	for _, f := range findings {
		fmt.Fprintf(&b, "- %s (unit price %.2f, %d variants):", f.ProductName, f.Price, f.VariantsCount)
		for _, tier := range f.Tiers {
			fmt.Fprintf(&b, " [%d+ units -> %v %s]", tier.Quantity, tier.Value, tier.Type)
		}
		if f.NegativeRisk {
			b.WriteString(" NEGATIVE TOTAL RISK")
		}
		b.WriteString("\n")
	}
	return b.String()
}
