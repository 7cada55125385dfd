package i18n

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
)

type ctxKey string

const localeKey ctxKey = "locale"

const DefaultLocale = "en"

// messages holds the catalog of every locale. Placeholders are positional:
// {0} is the first param passed to T.
var messages = map[string]map[string]string{
	"en": {
		"product.code_not_found":     "Product with code {0} not found.",
		"product.code_already_used":  "Product code {0} is already used.",
		"product.invalid_payload":    "Invalid product payload.",
		"cart.item.not_enough_stock": "Not enough stock for product {0}, quantity limited to {1}.",
		"cart.item.quantity_zero":    "Quantity of product {0} reached zero, item removed from cart.",
		"cart.invalid_quantity":      "Quantity must be an integer.",
		"cart.invalid_product_code":  "Product code is required.",
		"cart.invalid_payload":       "Invalid cart request.",
		"category.invalid_query":     "Limit and page must be non-negative integers.",
		"user.email_already_used":    "Email {0} is already used.",
		"user.invalid_payload":       "Invalid account payload.",
		"user.invalid_credentials":   "Invalid email or password.",
		"auth.unauthorized":          "Authentication required.",
		"auth.forbidden":             "Access denied.",
		"server.internal_error":      "Internal server error.",
		"request.too_many":           "Too many requests.",
	},
	"fr": {
		"product.code_not_found":     "Le produit avec le code {0} est introuvable.",
		"product.code_already_used":  "Le code produit {0} est déjà utilisé.",
		"product.invalid_payload":    "Données produit invalides.",
		"cart.item.not_enough_stock": "Stock insuffisant pour le produit {0}, quantité limitée à {1}.",
		"cart.item.quantity_zero":    "La quantité du produit {0} est nulle, article retiré du panier.",
		"cart.invalid_quantity":      "La quantité doit être un entier.",
		"cart.invalid_product_code":  "Le code produit est obligatoire.",
		"cart.invalid_payload":       "Requête panier invalide.",
		"category.invalid_query":     "La limite et la page doivent être des entiers positifs ou nuls.",
		"user.email_already_used":    "L'adresse {0} est déjà utilisée.",
		"user.invalid_payload":       "Données de compte invalides.",
		"user.invalid_credentials":   "Email ou mot de passe invalide.",
		"auth.unauthorized":          "Authentification requise.",
		"auth.forbidden":             "Accès refusé.",
		"server.internal_error":      "Erreur interne du serveur.",
		"request.too_many":           "Trop de requêtes.",
	},
}

var universal = newUniversal()

func newUniversal() *ut.UniversalTranslator {
	uni := ut.New(en.New(), en.New(), fr.New())

	for locale, catalog := range messages {
		trans, found := uni.GetTranslator(locale)
		if !found {
			panic(fmt.Sprintf("i18n: no locale data for %q", locale))
		}
		for key, text := range catalog {
			if err := trans.Add(key, text, false); err != nil {
				panic(fmt.Sprintf("i18n: add %s/%s: %v", locale, key, err))
			}
		}
	}

	return uni
}

func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey, locale)
}

func LocaleFrom(ctx context.Context) string {
	if v, ok := ctx.Value(localeKey).(string); ok && v != "" {
		return v
	}
	return DefaultLocale
}

// Supported reports whether a message catalog exists for locale.
func Supported(locale string) bool {
	_, ok := messages[locale]
	return ok
}

// translator returns the translator of locale, or the fallback one.
func translator(locale string) ut.Translator {
	trans, _ := universal.GetTranslator(locale)
	return trans
}

// T translates key into the locale carried by ctx, falling back to the
// default locale and finally to the key itself. Params fill {0}, {1}, ...
// in order.
func T(ctx context.Context, key string, params ...any) string {
	args := make([]string, len(params))
	for i, p := range params {
		args[i] = fmt.Sprint(p)
	}

	locale := LocaleFrom(ctx)
	if !Supported(locale) {
		locale = DefaultLocale
	}

	if msg, ok := translate(locale, key, args); ok {
		return msg
	}
	if msg, ok := translate(DefaultLocale, key, args); ok {
		return msg
	}
	return key
}

// translate pads missing params with empty strings; the translator indexes
// params by placeholder position.
func translate(locale, key string, args []string) (string, bool) {
	text, ok := messages[locale][key]
	if !ok {
		return "", false
	}
	if n := strings.Count(text, "{"); len(args) < n {
		args = append(args, make([]string, n-len(args))...)
	}

	msg, err := translator(locale).T(key, args...)
	if err != nil {
		return "", false
	}
	return msg, true
}
