package handler

import (
	"sort"
	"strconv"
	"strings"

	"github.com/iliyamo/fyyur/internal/booking"
	"github.com/iliyamo/fyyur/internal/model"
)

// GenreChoices are the genres offered on venue and artist forms.
var GenreChoices = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic", "Folk", "Funk",
	"Hip-Hop", "Heavy Metal", "Instrumental", "Jazz", "Musical Theatre", "Pop",
	"Punk", "R&B", "Reggae", "Rock n Roll", "Soul", "Swing", "Other",
}

// StateChoices are the US state codes offered on venue and artist forms.
var StateChoices = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "HI",
	"ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MT", "NE", "NV", "NH",
	"NJ", "NM", "NY", "NC", "ND", "OH", "OK", "OR", "MD", "MA", "MI", "MN",
	"MS", "MO", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA",
	"WV", "WI", "WY",
}

func oneOf(choices []string, v string) bool {
	for _, c := range choices {
		if c == v {
			return true
		}
	}
	return false
}

// ProfileForm is the venue/artist form.  Checkboxes arrive as "y" when
// ticked; venues post seeking_talent and artists post seeking_venue.
type ProfileForm struct {
	Name               string   `form:"name"`
	City               string   `form:"city"`
	State              string   `form:"state"`
	Address            string   `form:"address"`
	Phone              string   `form:"phone"`
	Genres             []string `form:"genres"`
	ImageLink          string   `form:"image_link"`
	Website            string   `form:"website_link"`
	FacebookLink       string   `form:"facebook_link"`
	SeekingTalent      string   `form:"seeking_talent"`
	SeekingVenue       string   `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description"`
}

// Seeking reports whether either seeking checkbox was ticked.
func (f ProfileForm) Seeking() bool {
	return checked(f.SeekingTalent) || checked(f.SeekingVenue)
}

func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "y", "yes", "on", "true", "1":
		return true
	}
	return false
}

func (f *ProfileForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.ToUpper(strings.TrimSpace(f.State))
	f.Address = strings.TrimSpace(f.Address)
	f.Phone = strings.TrimSpace(f.Phone)
	f.ImageLink = strings.TrimSpace(f.ImageLink)
	f.Website = strings.TrimSpace(f.Website)
	f.FacebookLink = strings.TrimSpace(f.FacebookLink)
	f.SeekingDescription = strings.TrimSpace(f.SeekingDescription)
}

// Validate returns user-facing problems with the submission, in form order.
func (f ProfileForm) Validate() []string {
	var errs []string
	if f.Name == "" {
		errs = append(errs, "Name is required.")
	}
	if f.City == "" {
		errs = append(errs, "City is required.")
	}
	if !oneOf(StateChoices, f.State) {
		errs = append(errs, "State must be a valid US state code.")
	}
	if len(f.Genres) == 0 {
		errs = append(errs, "Choose at least one genre.")
	}
	for _, g := range f.Genres {
		if !oneOf(GenreChoices, g) {
			errs = append(errs, "Unknown genre "+strconv.Quote(g)+".")
		}
	}
	return errs
}

func (f ProfileForm) venue(id uint64) *model.Venue {
	return &model.Venue{
		ID:                 id,
		Name:               f.Name,
		Genres:             f.Genres,
		Address:            f.Address,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Website:            f.Website,
		FacebookLink:       f.FacebookLink,
		SeekingTalent:      f.Seeking(),
		SeekingDescription: f.SeekingDescription,
		ImageLink:          f.ImageLink,
	}
}

func (f ProfileForm) artist(id uint64) *model.Artist {
	return &model.Artist{
		ID:                 id,
		Name:               f.Name,
		Genres:             f.Genres,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Website:            f.Website,
		FacebookLink:       f.FacebookLink,
		SeekingVenue:       f.Seeking(),
		SeekingDescription: f.SeekingDescription,
		ImageLink:          f.ImageLink,
	}
}

func yes(b bool) string {
	if b {
		return "y"
	}
	return ""
}

func venueForm(v *model.Venue) ProfileForm {
	return ProfileForm{
		Name: v.Name, City: v.City, State: v.State, Address: v.Address, Phone: v.Phone,
		Genres: v.Genres, ImageLink: v.ImageLink, Website: v.Website, FacebookLink: v.FacebookLink,
		SeekingTalent: yes(v.SeekingTalent), SeekingDescription: v.SeekingDescription,
	}
}

func artistForm(a *model.Artist) ProfileForm {
	return ProfileForm{
		Name: a.Name, City: a.City, State: a.State, Phone: a.Phone,
		Genres: a.Genres, ImageLink: a.ImageLink, Website: a.Website, FacebookLink: a.FacebookLink,
		SeekingVenue: yes(a.SeekingVenue), SeekingDescription: a.SeekingDescription,
	}
}

// profilePage is the data behind the venue and artist forms.
type profilePage struct {
	page
	ID     uint64
	Form   ProfileForm
	Errors []string
	Genres []string
	States []string
}

func newProfilePage(title string, id uint64, f ProfileForm, errs []string) profilePage {
	genres := append([]string(nil), GenreChoices...)
	sort.Strings(genres)
	return profilePage{
		page:   page{title: title},
		ID:     id,
		Form:   f,
		Errors: errs,
		Genres: genres,
		States: StateChoices,
	}
}

// ShowForm is the show listing form.
type ShowForm struct {
	ArtistID  string `form:"artist_id"`
	VenueID   string `form:"venue_id"`
	StartTime string `form:"start_time"`
}

// parsed validates the submission and returns the show it describes.
func (f ShowForm) parsed() (*model.Show, []string) {
	var errs []string
	artistID, err := strconv.ParseUint(strings.TrimSpace(f.ArtistID), 10, 64)
	if err != nil || artistID == 0 {
		errs = append(errs, "Artist ID must be a positive number.")
	}
	venueID, err := strconv.ParseUint(strings.TrimSpace(f.VenueID), 10, 64)
	if err != nil || venueID == 0 {
		errs = append(errs, "Venue ID must be a positive number.")
	}
	start, err := booking.ParseStartTime(f.StartTime)
	if err != nil {
		errs = append(errs, "Start time must look like "+booking.StartTimeLayouts[0]+".")
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return &model.Show{ArtistID: artistID, VenueID: venueID, StartTime: start}, nil
}

type showPage struct {
	page
	Form   ShowForm
	Errors []string
}
