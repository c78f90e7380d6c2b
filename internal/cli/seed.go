package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/mytheresa/go-inventory/app/categories"
	"github.com/mytheresa/go-inventory/app/products"
	"github.com/mytheresa/go-inventory/models"
)

// SeedFile is the yaml layout accepted by `inventory seed`.
//
//	categories:
//	  - name: Tools
//	    description: Hand tools
//	products:
//	  - name: Hammer
//	    quantity: 3
//	    price: 19.99
//	    category: Tools
type SeedFile struct {
	Categories []SeedCategory `yaml:"categories"`
	Products   []SeedProduct  `yaml:"products"`
}

type SeedCategory struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// SeedProduct keeps Price as written in the file so it parses to an exact
// decimal. An empty price is zero.
type SeedProduct struct {
	Name     string `yaml:"name"`
	Quantity int    `yaml:"quantity"`
	Price    string `yaml:"price"`
	Category string `yaml:"category"`
}

func (p SeedProduct) price() (decimal.Decimal, error) {
	raw := strings.TrimSpace(p.Price)
	if raw == "" {
		return decimal.Zero, nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, models.NewValidationError("price", "price must be a number")
	}
	return price, nil
}

func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &file, nil
}

// Seed submits every category, then every product, through the same managers
// the page uses. It stops at the first rejected record.
func Seed(ctx context.Context, db *gorm.DB, file *SeedFile) error {
	categoryRepo := models.NewCategoriesRepository(db)
	categoryManager := categories.NewManager(categoryRepo)
	productManager := products.NewManager(categoryRepo, models.NewProductsRepository(db))

	for i, c := range file.Categories {
		category, err := categoryManager.Create(ctx, categories.CategoryInput{
			Name:        c.Name,
			Description: c.Description,
		})
		if err != nil {
			return fmt.Errorf("category #%d: %w", i+1, err)
		}
		log.Info().Uint("id", category.ID).Str("name", category.Name).Msg("category seeded")
	}

	for i, p := range file.Products {
		price, err := p.price()
		if err != nil {
			return fmt.Errorf("product #%d: %w", i+1, err)
		}
		product, err := productManager.Create(ctx, products.ProductInput{
			Name:         p.Name,
			Quantity:     p.Quantity,
			Price:        price,
			CategoryName: p.Category,
		})
		if err != nil {
			return fmt.Errorf("product #%d: %w", i+1, err)
		}
		log.Info().Uint("id", product.ID).Str("name", product.Name).Msg("product seeded")
	}
	return nil
}

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert categories and products from a yaml file",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := LoadSeedFile(seedFile)
		if err != nil {
			return err
		}

		_, db, err := connect()
		if err != nil {
			return err
		}
		defer closeDB(db)

		if err := Seed(cmd.Context(), db, file); err != nil {
			return err
		}
		log.Info().
			Int("categories", len(file.Categories)).
			Int("products", len(file.Products)).
			Msg("seed completed")
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "yaml file with categories and products")
	_ = seedCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(seedCmd)
}
