package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"pet-store/internal/domain/pets"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Pets []seedPet `yaml:"pets"`
}

type seedPet struct {
	Name         string `yaml:"name"`
	Birthday     string `yaml:"birthday"`
	Species      string `yaml:"species"`
	FavoriteFood string `yaml:"favoriteFood"`
	Description  string `yaml:"description"`
	Price        string `yaml:"price"` // string para no perder precisión ("9.99")
	PicURL       string `yaml:"picUrl"`
	PicURLSq     string `yaml:"picUrlSq"`
}

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga mascotas desde un YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.migrate(cmd.Context()); err != nil {
				return err
			}

			n, err := seedPets(cmd.Context(), a.service(), f)
			if err != nil {
				return err
			}
			a.log.Info("seed done", map[string]any{"file": file, "created": n})
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "seeds/pets.yaml", "archivo YAML con las mascotas")
	return cmd
}

// seedPets pasa cada entrada por el service, así aplica la misma validación
// que la API. Devuelve cuántas se crearon antes del primer error.
func seedPets(ctx context.Context, svc *pets.Service, r io.Reader) (int, error) {
	var sf seedFile
	if err := yaml.NewDecoder(r).Decode(&sf); err != nil {
		return 0, fmt.Errorf("decode seed: %w", err)
	}

	for i, sp := range sf.Pets {
		price, err := pets.ParseMoney(sp.Price)
		if err != nil {
			return i, fmt.Errorf("seed pet %d (%s): %w", i, sp.Name, err)
		}
		_, err = svc.Create(ctx, pets.CreateInput{
			Name:         sp.Name,
			Birthday:     sp.Birthday,
			Species:      sp.Species,
			FavoriteFood: sp.FavoriteFood,
			Description:  sp.Description,
			Price:        price,
			PicURL:       sp.PicURL,
			PicURLSq:     sp.PicURLSq,
		})
		if err != nil {
			return i, fmt.Errorf("seed pet %d (%s): %w", i, sp.Name, err)
		}
	}
	return len(sf.Pets), nil
}
