// Package messages holds the fixed, localized texts shown to the user.
package messages

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/aretw0/bakingapp/pkg/domain"
)

// Message keys.
const (
	KeyNoInternet     = "error_loading_no_internet"
	KeyNetworkProblem = "error_loading_network_problem"
	KeyGeneral        = "error_loading_general"
	KeyRetry          = "action_retry"
	KeyNoRecipes      = "no_recipes"
	KeyLoading        = "loading_recipes"
	KeyPrevious       = "action_previous"
	KeyNext           = "action_next"
	KeyBack           = "action_back"
	KeyQuit           = "action_quit"
	KeyStepHeader     = "step_header"
	KeyServings       = "recipe_servings"
	KeyIngredients    = "recipe_ingredients"
	KeySteps          = "recipe_steps"
	KeyVideo          = "step_video"
	KeyThumbnail      = "step_thumbnail"
)

var supported = []language.Tag{
	language.English,
	language.BrazilianPortuguese,
}

var matcher = language.NewMatcher(supported)

var catalog = map[language.Tag]map[string]string{
	language.English: {
		KeyNoInternet:     "No internet connection. Check your connection and try again.",
		KeyNetworkProblem: "A network problem occurred while loading the recipes.",
		KeyGeneral:        "Something went wrong while loading the recipes.",
		KeyRetry:          "Retry",
		KeyNoRecipes:      "No recipes available.",
		KeyLoading:        "Loading recipes...",
		KeyPrevious:       "Previous",
		KeyNext:           "Next",
		KeyBack:           "Back",
		KeyQuit:           "Quit",
		KeyStepHeader:     "Step %d of %d",
		KeyServings:       "Servings: %d",
		KeyIngredients:    "Ingredients",
		KeySteps:          "Steps",
		KeyVideo:          "Video",
		KeyThumbnail:      "Thumbnail",
	},
	language.BrazilianPortuguese: {
		KeyNoInternet:     "Sem conexão com a internet. Verifique sua conexão e tente novamente.",
		KeyNetworkProblem: "Ocorreu um problema de rede ao carregar as receitas.",
		KeyGeneral:        "Algo deu errado ao carregar as receitas.",
		KeyRetry:          "Tentar novamente",
		KeyNoRecipes:      "Nenhuma receita disponível.",
		KeyLoading:        "Carregando receitas...",
		KeyPrevious:       "Anterior",
		KeyNext:           "Próximo",
		KeyBack:           "Voltar",
		KeyQuit:           "Sair",
		KeyStepHeader:     "Passo %d de %d",
		KeyServings:       "Porções: %d",
		KeyIngredients:    "Ingredientes",
		KeySteps:          "Passos",
		KeyVideo:          "Vídeo",
		KeyThumbnail:      "Miniatura",
	},
}

func init() {
	for tag, entries := range catalog {
		for key, text := range entries {
			if err := message.SetString(tag, key, text); err != nil {
				panic(err)
			}
		}
	}
}

// Catalog resolves message keys for one locale.
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns the catalog best matching locale (e.g. "pt-BR", "en_US").
// Unknown or malformed locales fall back to English.
func New(locale string) *Catalog {
	tag := language.English
	if locale != "" {
		if parsed, err := language.Parse(locale); err == nil {
			_, idx, conf := matcher.Match(parsed)
			if conf != language.No {
				tag = supported[idx]
			}
		}
	}
	return &Catalog{tag: tag, printer: message.NewPrinter(tag)}
}

// FromAcceptLanguage returns the catalog best matching an HTTP Accept-Language header.
func FromAcceptLanguage(header string) *Catalog {
	tag := language.English
	if tags, _, err := language.ParseAcceptLanguage(header); err == nil && len(tags) > 0 {
		_, idx, conf := matcher.Match(tags...)
		if conf != language.No {
			tag = supported[idx]
		}
	}
	return &Catalog{tag: tag, printer: message.NewPrinter(tag)}
}

// Locale returns the resolved language tag.
func (c *Catalog) Locale() language.Tag {
	return c.tag
}

// Text returns the localized text for key.
func (c *Catalog) Text(key string) string {
	return c.printer.Sprintf(key)
}

// Sprintf formats the localized text for key with args.
func (c *Catalog) Sprintf(key string, args ...any) string {
	return c.printer.Sprintf(key, args...)
}

// Failure returns the fixed message for a fetch failure category.
func (c *Catalog) Failure(kind domain.FailureKind) string {
	switch kind {
	case domain.FailureNoConnectivity:
		return c.Text(KeyNoInternet)
	case domain.FailureNetwork:
		return c.Text(KeyNetworkProblem)
	default:
		return c.Text(KeyGeneral)
	}
}
