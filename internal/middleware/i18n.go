package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"translingo/internal/lang"
)

type localeContextKey struct{}

// LocaleKey stores the resolved request locale in the request context.
var LocaleKey = localeContextKey{}

// CountryLookup resolves ISO country codes for an IP address.
type CountryLookup func(ip string) (string, error)

// countryLocale maps ISO country codes to the supported language most
// plausibly wanted there, used when a request carries no locale hint.
var countryLocale = map[string]string{
	"IN": "hi", "BR": "pt", "PT": "pt", "MX": "es", "ES": "es",
	"AR": "es", "CO": "es", "DE": "de", "AT": "de", "FR": "fr",
	"IT": "it", "RU": "ru", "JP": "ja", "KR": "ko", "CN": "zh",
	"TW": "zh", "SA": "ar", "AE": "ar", "EG": "ar", "ID": "id",
	"NL": "nl", "PL": "pl", "TR": "tr", "UA": "uk", "VN": "vi",
	"TH": "th", "BD": "bn",
}

var acceptMatcher = language.NewMatcher([]language.Tag{
	language.English, language.Spanish, language.German, language.French,
	language.Italian, language.Portuguese, language.Russian, language.Hindi,
	language.Japanese, language.Korean, language.Chinese, language.Arabic,
	language.Indonesian, language.Dutch, language.Polish, language.Turkish,
	language.Ukrainian, language.Vietnamese, language.Thai, language.Bengali,
})

// I18N resolves the preferred locale for each request, in priority
// order: explicit X-Locale header, Accept-Language, GeoIP country of the
// client IP, then the configured default. The result is a normalized
// supported code.
func I18N(defaultLocale string, lookup CountryLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := detectLocale(r, defaultLocale, lookup)
			ctx := context.WithValue(r.Context(), LocaleKey, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, fallback string, lookup CountryLookup) string {
	if v := r.Header.Get("X-Locale"); v != "" && lang.Supported(v) {
		return lang.Normalize(v)
	}
	if v := matchAcceptLanguage(r.Header.Get("Accept-Language")); v != "" {
		return v
	}
	if lookup != nil {
		if ip := ClientIP(r); ip != "" {
			if country, err := lookup(ip); err == nil {
				if v, ok := countryLocale[strings.ToUpper(country)]; ok {
					return v
				}
			}
		}
	}
	return lang.Normalize(fallback)
}

func matchAcceptLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	tag, _, conf := acceptMatcher.Match(tags...)
	if conf == language.No {
		return ""
	}
	base, baseConf := tag.Base()
	if baseConf == language.No {
		return ""
	}
	code := base.String()
	if !lang.Supported(code) {
		return ""
	}
	return code
}

// ClientIP returns the best-effort client IP address for the request.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// LocaleFromContext returns the locale stored by I18N, or "en".
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok {
		return v
	}
	return lang.Default
}
