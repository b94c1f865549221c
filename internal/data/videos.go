package data

import (
	"slices"
	"sync"
	"time"

	"github.com/hafizmfadli/go-video/internal/validator"
)

// PublicationDelay is how long after creation a new video is published by
// default.
const PublicationDelay = 24 * time.Hour

const (
	maxTitleChars  = 40
	maxAuthorChars = 20
	minAgeLimit    = 1
	maxAgeLimit    = 18
)

// Video is the only record the service stores. The ID is assigned by the
// store, Title holds 1 to 40 characters and Author 1 to 20. CanBeDownloaded
// is false at creation and MinAgeRestriction is nil (unrestricted) until an
// update sets an age between 1 and 18. CreatedAt never changes after
// creation, and AvailableResolutions is never empty.
type Video struct {
	ID                   int64        `json:"id"`
	Title                string       `json:"title"`
	Author               string       `json:"author"`
	CanBeDownloaded      bool         `json:"canBeDownloaded"`
	MinAgeRestriction    *int         `json:"minAgeRestriction"`
	CreatedAt            time.Time    `json:"createdAt"`
	PublicationDate      time.Time    `json:"publicationDate"`
	AvailableResolutions []Resolution `json:"availableResolutions"`
}

func (v *Video) clone() *Video {
	c := *v
	c.AvailableResolutions = slices.Clone(v.AvailableResolutions)
	if v.MinAgeRestriction != nil {
		age := *v.MinAgeRestriction
		c.MinAgeRestriction = &age
	}
	return &c
}

// VideoCreate is a create request that passed ValidateVideoCreate.
type VideoCreate struct {
	Title                string
	Author               string
	AvailableResolutions []Resolution
}

// NewVideo builds the record for in, timestamped at now. The ID is left for
// the store to assign.
func NewVideo(in VideoCreate, now time.Time) *Video {
	createdAt := now.UTC().Truncate(time.Millisecond)
	return &Video{
		Title:                in.Title,
		Author:               in.Author,
		CanBeDownloaded:      false,
		MinAgeRestriction:    nil,
		CreatedAt:            createdAt,
		PublicationDate:      createdAt.Add(PublicationDelay),
		AvailableResolutions: in.AvailableResolutions,
	}
}

// VideoUpdate is an update request that passed ValidateVideoUpdate. It
// carries every mutable field of a Video.
type VideoUpdate struct {
	Title                string
	Author               string
	AvailableResolutions []Resolution
	CanBeDownloaded      bool
	MinAgeRestriction    *int
	PublicationDate      time.Time
}

// Apply overwrites every mutable field of video with the values in u.
func (u VideoUpdate) Apply(video *Video) {
	video.Title = u.Title
	video.Author = u.Author
	video.AvailableResolutions = u.AvailableResolutions
	video.CanBeDownloaded = u.CanBeDownloaded
	video.MinAgeRestriction = u.MinAgeRestriction
	video.PublicationDate = u.PublicationDate
}

const (
	msgTitle             = "Incorrect input title"
	msgAuthor            = "Incorrect input author name"
	msgNoResolutions     = "At least one correct resolution should be added"
	msgInvalidResolution = "Invalid resolution"
	msgNotBoolean        = "Not boolean"
	msgMinAge            = "Invalid input"
	msgPublicationDate   = "Incorrect input publicationDate value"
)

// ValidateVideoCreate checks p against the create rules, recording one error
// per failing field on v in the order title, author, availableResolutions.
// The returned value is only meaningful when v.Valid().
func ValidateVideoCreate(v *validator.Validator, p Payload) VideoCreate {
	var in VideoCreate

	in.Title = validateText(v, p, "title", msgTitle, maxTitleChars, false)
	in.Author = validateText(v, p, "author", msgAuthor, maxAuthorChars, false)
	in.AvailableResolutions = validateResolutions(v, p)

	return in
}

// ValidateVideoUpdate checks p against the update rules. All six fields are
// checked on every call, so up to six errors can be recorded on v.
func ValidateVideoUpdate(v *validator.Validator, p Payload) VideoUpdate {
	var in VideoUpdate

	in.Title = validateText(v, p, "title", msgTitle, maxTitleChars, true)
	in.Author = validateText(v, p, "author", msgAuthor, maxAuthorChars, true)
	in.AvailableResolutions = validateResolutions(v, p)

	canBeDownloaded, ok := p.Bool("canBeDownloaded")
	v.Check(ok, "canBeDownloaded", msgNotBoolean)
	in.CanBeDownloaded = canBeDownloaded

	if !p.Null("minAgeRestriction") {
		age, ok := p.Int("minAgeRestriction")
		v.Check(ok && validator.Between(age, minAgeLimit, maxAgeLimit), "minAgeRestriction", msgMinAge)
		in.MinAgeRestriction = &age
	}

	raw, ok := p.String("publicationDate")
	if !ok || !validator.NotBlank(raw) {
		v.AddError("publicationDate", msgPublicationDate)
	} else if published, err := time.Parse(time.RFC3339Nano, raw); err != nil {
		v.AddError("publicationDate", msgPublicationDate)
	} else {
		in.PublicationDate = published.UTC()
	}

	return in
}

// validateText checks a required string field. With trim set, a value made
// only of whitespace is rejected as well as an empty one.
func validateText(v *validator.Validator, p Payload, field, message string, limit int, trim bool) string {
	s, ok := p.String(field)
	if trim {
		ok = ok && validator.NotBlank(s)
	}
	v.Check(ok && s != "" && validator.MaxChars(s, limit), field, message)
	return s
}

func validateResolutions(v *validator.Validator, p Payload) []Resolution {
	const field = "availableResolutions"

	if p.Falsy(field) {
		v.AddError(field, msgNoResolutions)
		return nil
	}

	tags, ok := p.Strings(field)
	if !ok {
		v.AddError(field, msgInvalidResolution)
		return nil
	}
	if len(tags) == 0 {
		v.AddError(field, msgNoResolutions)
		return nil
	}

	resolutions := make([]Resolution, 0, len(tags))
	for _, tag := range tags {
		r, ok := ParseResolution(tag)
		if !ok {
			v.AddError(field, msgInvalidResolution)
			return nil
		}
		resolutions = append(resolutions, r)
	}
	return resolutions
}

// VideoModel is the in-memory video store. The zero value is not usable,
// create one with NewVideoModel.
type VideoModel struct {
	mu     sync.RWMutex
	videos []*Video
	lastID int64
}

// NewVideoModel returns an empty store.
func NewVideoModel() *VideoModel {
	return &VideoModel{}
}

// Insert assigns video the next free ID and appends it to the store.
func (m *VideoModel) Insert(video *Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastID++
	video.ID = m.lastID
	m.videos = append(m.videos, video.clone())
	return nil
}

// GetAll returns every stored video in insertion order.
func (m *VideoModel) GetAll() ([]*Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	videos := make([]*Video, 0, len(m.videos))
	for _, v := range m.videos {
		videos = append(videos, v.clone())
	}
	return videos, nil
}

// Get returns the video with the given id, or ErrRecordNotFound.
func (m *VideoModel) Get(id int64) (*Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, ErrRecordNotFound
	}
	return m.videos[i].clone(), nil
}

// Update replaces the stored video that has the same ID as video. The
// creation timestamp is kept.
func (m *VideoModel) Update(video *Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(video.ID)
	if i < 0 {
		return ErrRecordNotFound
	}

	updated := video.clone()
	updated.CreatedAt = m.videos[i].CreatedAt
	m.videos[i] = updated

	return nil
}

// Delete removes the video with the given id, or returns ErrRecordNotFound.
func (m *VideoModel) Delete(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return ErrRecordNotFound
	}
	m.videos = slices.Delete(m.videos, i, i+1)
	return nil
}

// DeleteAll empties the store. IDs keep counting from where they were.
func (m *VideoModel) DeleteAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.videos = nil
	return nil
}

// Count returns the number of stored videos.
func (m *VideoModel) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.videos)
}

// indexOf must be called with mu held.
func (m *VideoModel) indexOf(id int64) int {
	return slices.IndexFunc(m.videos, func(v *Video) bool { return v.ID == id })
}
