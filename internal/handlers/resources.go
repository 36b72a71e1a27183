package handlers

import (
	"net/http"

	"github.com/standapp/standapp-backend/internal/models"
)

// CrisisLine is one phone hotline
type CrisisLine struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// ResourceLink is an external support website
type ResourceLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CrisisResources is the support directory shown to users in distress
type CrisisResources struct {
	Emergency []CrisisLine   `json:"emergency"`
	Hotlines  []CrisisLine   `json:"hotlines"`
	Links     []ResourceLink `json:"links"`
}

// CrisisResourcesFor returns the support directory in the given language.
// Numbers are Sri Lanka national services.
func CrisisResourcesFor(language models.Language) CrisisResources {
	if language == models.LanguageSinhala {
		return CrisisResources{
			Emergency: []CrisisLine{
				{Name: "සුවසැරිය ගිලන්රථ සේවය", Number: "1990"},
				{Name: "පොලිස් හදිසි ඇමතුම්", Number: "119"},
			},
			Hotlines: []CrisisLine{
				{Name: "ජාතික මානසික සෞඛ්‍ය උපකාරක සේවය", Number: "1926"},
				{Name: "CCCline", Number: "1333"},
				{Name: "සුමිත්‍රයෝ", Number: "0112696666"},
			},
			Links: []ResourceLink{
				{Name: "ජාතික මානසික සෞඛ්‍ය ආයතනය (NIMH)", URL: "https://nimh.health.gov.lk"},
				{Name: "Anxiety and Depression Association of America", URL: "https://adaa.org"},
			},
		}
	}
	return CrisisResources{
		Emergency: []CrisisLine{
			{Name: "Suwa Seriya Ambulance", Number: "1990"},
			{Name: "Police Emergency", Number: "119"},
		},
		Hotlines: []CrisisLine{
			{Name: "National Mental Health Helpline", Number: "1926"},
			{Name: "CCCline", Number: "1333"},
			{Name: "Sumithrayo", Number: "0112696666"},
		},
		Links: []ResourceLink{
			{Name: "National Institute of Mental Health (NIMH)", URL: "https://nimh.health.gov.lk"},
			{Name: "Anxiety and Depression Association of America", URL: "https://adaa.org"},
		},
	}
}

// GetResources handles GET /api/resources?lang=
func GetResources(w http.ResponseWriter, r *http.Request) {
	lang := models.LanguageEnglish
	if q := r.URL.Query().Get("lang"); models.ValidLanguage(q) {
		lang = models.Language(q)
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"resources": CrisisResourcesFor(lang),
	})
}
