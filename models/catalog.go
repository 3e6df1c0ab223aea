package models

// RowSpec describes one strip on the home screen.
type RowSpec struct {
	Key        string `json:"key"`
	Title      string `json:"title"`
	Endpoint   string `json:"endpoint"`
	IsLargeRow bool   `json:"is_large_row"`
}

// Endpoints relative to the metadata base URL. The client appends the api key.
const (
	EndpointOriginals     = "/discover/tv?with_networks=213"
	EndpointTrending      = "/trending/all/week?language=en-US"
	EndpointTopRated      = "/movie/top_rated?language=en-US"
	EndpointAction        = "/discover/movie?with_genres=28"
	EndpointComedy        = "/discover/movie?with_genres=35"
	EndpointHorror        = "/discover/movie?with_genres=27"
	EndpointRomance       = "/discover/movie?with_genres=10749"
	EndpointDocumentaries = "/discover/movie?with_genres=99"
	EndpointTVShows       = "/tv/popular?language=en-US&page=1"
)

// HomeRows is the ordered set of rows shown under the banner.
var HomeRows = []RowSpec{
	{Key: "originals", Title: "NETFLIX ORIGINALS", Endpoint: EndpointOriginals, IsLargeRow: true},
	{Key: "trending", Title: "Trending Now", Endpoint: EndpointTrending},
	{Key: "top_rated", Title: "Top Rated", Endpoint: EndpointTopRated},
	{Key: "action", Title: "Action Movies", Endpoint: EndpointAction},
	{Key: "comedy", Title: "Comedy Movies", Endpoint: EndpointComedy},
	{Key: "horror", Title: "Horror Movies", Endpoint: EndpointHorror},
	{Key: "romance", Title: "Romance Movies", Endpoint: EndpointRomance},
	{Key: "documentaries", Title: "Documentaries", Endpoint: EndpointDocumentaries},
	{Key: "tv", Title: "TV Shows", Endpoint: EndpointTVShows},
}

// GenreRow is the switchable row; its endpoint can be moved among Genres.
var GenreRow = RowSpec{Key: "genre", Title: "Browse by Genre", Endpoint: EndpointAction}

// Genre is an option of the genre row picker.
type Genre struct {
	Label    string `json:"label"`
	Endpoint string `json:"endpoint"`
}

var Genres = []Genre{
	{Label: "Action", Endpoint: EndpointAction},
	{Label: "Comedy", Endpoint: EndpointComedy},
	{Label: "Horror", Endpoint: EndpointHorror},
	{Label: "Romance", Endpoint: EndpointRomance},
	{Label: "Documentaries", Endpoint: EndpointDocumentaries},
}

// IsCatalogEndpoint reports whether endpoint is one the app itself issues.
// Endpoint changes coming from clients are restricted to these.
func IsCatalogEndpoint(endpoint string) bool {
	if endpoint == GenreRow.Endpoint {
		return true
	}
	for _, r := range HomeRows {
		if r.Endpoint == endpoint {
			return true
		}
	}
	for _, g := range Genres {
		if g.Endpoint == endpoint {
			return true
		}
	}
	return false
}
