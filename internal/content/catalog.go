package content

import (
	"embed"
	"fmt"
	"io/fs"

	"troubleshoot-titans/internal/minigame"
	"troubleshoot-titans/internal/models"
	"troubleshoot-titans/internal/quiz"
	"troubleshoot-titans/internal/scenario"

	"gopkg.in/yaml.v3"
)

//go:embed catalog/*.yaml
var catalogFS embed.FS

// WordLists - словари мини-игр.
type WordLists struct {
	Scramble  []string `yaml:"scramble"`
	WordGuess []string `yaml:"wordguess"`
}

// Catalog - статический контент, встроенный в бинарник. После загрузки не изменяется.
type Catalog struct {
	scenarios     []*models.Scenario
	scenariosByID map[string]*models.Scenario
	quizzes       []*models.Quiz
	quizzesByID   map[string]*models.Quiz
	words         WordLists
}

// LoadCatalog загружает встроенный каталог.
func LoadCatalog() (*Catalog, error) {
	return LoadCatalogFS(catalogFS, "catalog")
}

// LoadCatalogFS загружает scenarios.yaml, quizzes.yaml и words.yaml из каталога dir.
// Каждый сценарий и квиз проходит ту же валидацию, что и сгенерированный контент.
func LoadCatalogFS(fsys fs.FS, dir string) (*Catalog, error) {
	c := &Catalog{
		scenariosByID: make(map[string]*models.Scenario),
		quizzesByID:   make(map[string]*models.Quiz),
	}

	if err := readYAML(fsys, dir+"/scenarios.yaml", &c.scenarios); err != nil {
		return nil, err
	}
	for i, s := range c.scenarios {
		if s.ID == "" {
			return nil, fmt.Errorf("static scenario #%d has no id", i)
		}
		if _, dup := c.scenariosByID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate static scenario id %q", s.ID)
		}
		if err := scenario.Validate(s); err != nil {
			return nil, fmt.Errorf("static scenario %q: %w", s.ID, err)
		}
		s.Source = models.SourceStatic
		c.scenariosByID[s.ID] = s
	}

	if err := readYAML(fsys, dir+"/quizzes.yaml", &c.quizzes); err != nil {
		return nil, err
	}
	for i, q := range c.quizzes {
		if q.ID == "" {
			return nil, fmt.Errorf("static quiz #%d has no id", i)
		}
		if _, dup := c.quizzesByID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate static quiz id %q", q.ID)
		}
		if err := quiz.Validate(q); err != nil {
			return nil, fmt.Errorf("static quiz %q: %w", q.ID, err)
		}
		q.Source = models.SourceStatic
		c.quizzesByID[q.ID] = q
	}

	if err := readYAML(fsys, dir+"/words.yaml", &c.words); err != nil {
		return nil, err
	}
	if err := normalizeWords("scramble", c.words.Scramble); err != nil {
		return nil, err
	}
	if err := normalizeWords("wordguess", c.words.WordGuess); err != nil {
		return nil, err
	}
	return c, nil
}

// normalizeWords проверяет словарь и приводит слова к нижнему регистру на месте.
func normalizeWords(list string, words []string) error {
	for i, w := range words {
		norm, err := minigame.NormalizeWord(w)
		if err != nil {
			return fmt.Errorf("word list %s #%d: %w", list, i, err)
		}
		words[i] = norm
	}
	return nil
}

func readYAML(fsys fs.FS, path string, out any) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Scenario возвращает статический сценарий по id.
func (c *Catalog) Scenario(id string) (*models.Scenario, bool) {
	s, ok := c.scenariosByID[id]
	return s, ok
}

// Scenarios возвращает статические сценарии в порядке каталога.
func (c *Catalog) Scenarios() []*models.Scenario {
	return c.scenarios
}

// Quiz возвращает статический квиз по id.
func (c *Catalog) Quiz(id string) (*models.Quiz, bool) {
	q, ok := c.quizzesByID[id]
	return q, ok
}

// Quizzes возвращает статические квизы в порядке каталога.
func (c *Catalog) Quizzes() []*models.Quiz {
	return c.quizzes
}

// Words возвращает словари мини-игр.
func (c *Catalog) Words() WordLists {
	return c.words
}
