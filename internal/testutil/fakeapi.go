package testutil

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"vocabdash/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const fakeSecret = "fake-api-secret"

// FakeUpload records a received multipart upload
type FakeUpload struct {
	Filename    string
	ContentType string
	Size        int
}

type fakeFailure struct {
	status int
	detail any
}

type fakeUser struct {
	id       int64
	password string
}

// FakeAPI is an in-memory rendition of the VocabDash backend served over httptest
type FakeAPI struct {
	Server *httptest.Server

	mu           sync.Mutex
	users        map[string]fakeUser
	documents    map[int64]domain.Document
	contents     map[int64]string
	processed    map[int64]bool
	translations map[int64][]domain.DictionaryEntry
	failures     map[string]fakeFailure
	nextID       int64
	tokenTTL     time.Duration

	requestIDs []string
	uploads    []FakeUpload
	batches    [][]string
}

// NewFakeAPI starts a fake backend. Call Close when done.
func NewFakeAPI() *FakeAPI {
	gin.SetMode(gin.TestMode)

	f := &FakeAPI{
		users:        make(map[string]fakeUser),
		documents:    make(map[int64]domain.Document),
		contents:     make(map[int64]string),
		processed:    make(map[int64]bool),
		translations: make(map[int64][]domain.DictionaryEntry),
		failures:     make(map[string]fakeFailure),
		tokenTTL:     30 * time.Minute,
	}

	r := gin.New()
	r.UseRawPath = true
	r.UnescapePathValues = true
	r.Use(f.record, f.injectFailures)

	r.POST("/auth/login", f.login)
	r.POST("/auth/signup", f.signup)

	authed := r.Group("/", f.authenticate)
	authed.GET("/documents/", f.listDocuments)
	authed.POST("/documents/upload", f.upload)
	authed.POST("/documents/:id/process", f.process)
	authed.GET("/documents/:id/words", f.words)
	authed.DELETE("/documents/:id", f.deleteDocument)
	authed.GET("/documents/:id/export/:format", f.export)
	authed.GET("/translations/suggestions/:word", f.suggestions)
	authed.POST("/translations/", f.saveTranslation)
	authed.POST("/translations/batch", f.batch)
	authed.GET("/translations/user", f.userTranslations)
	authed.DELETE("/translations/delete/:id", f.deleteTranslation)

	f.Server = httptest.NewServer(r)
	return f
}

// URL returns the base URL of the fake
func (f *FakeAPI) URL() string {
	return f.Server.URL
}

// Close shuts the server down
func (f *FakeAPI) Close() {
	f.Server.Close()
}

// Fail makes every request to route answer with status and a detail message.
// route is "<METHOD> <gin path>", e.g. "POST /documents/:id/process".
func (f *FakeAPI) Fail(route string, status int, detail any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[route] = fakeFailure{status: status, detail: detail}
}

// AddUser registers an account and returns a valid access token for it
func (f *FakeAPI) AddUser(email, password string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.addUserLocked(email, password)
	token, _ := f.issueToken(email, u.id)
	return token
}

// AddDocument stores an already processed document with the given words
func (f *FakeAPI) AddDocument(email, filename, fileType string, words []domain.WordStat) domain.Document {
	f.mu.Lock()
	defer f.mu.Unlock()

	u := f.users[email]
	f.nextID++
	doc := domain.Document{
		ID:         f.nextID,
		UserID:     u.id,
		Filename:   filename,
		FileType:   fileType,
		UploadDate: domain.Timestamp{Time: time.Now().UTC().Truncate(time.Second)},
	}
	f.documents[doc.ID] = doc

	var b strings.Builder
	for _, w := range words {
		for i := 0; i < w.Frequency; i++ {
			b.WriteString(w.Word)
			b.WriteByte(' ')
		}
		if w.HasTranslation() {
			f.upsertTranslationLocked(u.id, w.Word, w.Translation)
		}
	}
	f.contents[doc.ID] = b.String()
	f.processed[doc.ID] = true
	return doc
}

// RequestIDs returns the X-Request-ID header of every request received
func (f *FakeAPI) RequestIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requestIDs...)
}

// Uploads returns the received uploads
func (f *FakeAPI) Uploads() []FakeUpload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FakeUpload(nil), f.uploads...)
}

// Batches returns the word lists of batch translation requests
func (f *FakeAPI) Batches() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.batches...)
}

// HasDocument reports whether a document with the id exists
func (f *FakeAPI) HasDocument(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.documents[id]
	return ok
}

func (f *FakeAPI) addUserLocked(email, password string) fakeUser {
	if u, ok := f.users[email]; ok {
		return u
	}
	f.nextID++
	u := fakeUser{id: f.nextID, password: password}
	f.users[email] = u
	return u
}

func (f *FakeAPI) issueToken(email string, userID int64) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ID:        strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(f.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(fakeSecret))
}

func (f *FakeAPI) record(c *gin.Context) {
	f.mu.Lock()
	f.requestIDs = append(f.requestIDs, c.GetHeader("X-Request-ID"))
	f.mu.Unlock()
	c.Next()
}

func (f *FakeAPI) injectFailures(c *gin.Context) {
	f.mu.Lock()
	failure, ok := f.failures[c.Request.Method+" "+c.FullPath()]
	f.mu.Unlock()

	if ok {
		c.AbortWithStatusJSON(failure.status, gin.H{"detail": failure.detail})
		return
	}
	c.Next()
}

func (f *FakeAPI) authenticate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	tokenStr, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(fakeSecret), nil
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
		return
	}

	userID, _ := strconv.ParseInt(claims.ID, 10, 64)
	c.Set("userID", userID)
	c.Next()
}

func (f *FakeAPI) login(c *gin.Context) {
	email := c.PostForm("username")
	password := c.PostForm("password")

	f.mu.Lock()
	u, ok := f.users[email]
	f.mu.Unlock()

	if !ok || u.password != password {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect email or password"})
		return
	}

	token, err := f.issueToken(email, u.id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

func (f *FakeAPI) signup(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !strings.Contains(req.Email, "@") {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{
			{"loc": []string{"body", "email"}, "msg": "value is not a valid email address"},
		}})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.users[req.Email]; exists {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Email already registered"})
		return
	}
	u := f.addUserLocked(req.Email, req.Password)
	c.JSON(http.StatusOK, gin.H{
		"id":         u.id,
		"email":      req.Email,
		"created_at": time.Now().UTC().Format("2006-01-02T15:04:05.999999"),
	})
}

func userIDOf(c *gin.Context) int64 {
	return c.GetInt64("userID")
}

// documentOf resolves :id to a document of the caller, answering 404 otherwise
func (f *FakeAPI) documentOf(c *gin.Context) (domain.Document, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Document not found"})
		return domain.Document{}, false
	}

	f.mu.Lock()
	doc, ok := f.documents[id]
	f.mu.Unlock()

	if !ok || doc.UserID != userIDOf(c) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Document not found"})
		return domain.Document{}, false
	}
	return doc, true
}

func (f *FakeAPI) listDocuments(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	docs := []domain.Document{}
	for _, d := range f.documents {
		if d.UserID == userIDOf(c) {
			docs = append(docs, d)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	c.JSON(http.StatusOK, docs)
}

var allowedTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
}

func (f *FakeAPI) upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"msg": "field required"}}})
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if !allowedTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid file type. Only PDF, DOCX, and TXT allowed."})
		return
	}

	file, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.uploads = append(f.uploads, FakeUpload{Filename: fh.Filename, ContentType: contentType, Size: len(data)})

	f.nextID++
	doc := domain.Document{
		ID:         f.nextID,
		UserID:     userIDOf(c),
		Filename:   fh.Filename,
		FileType:   contentType,
		UploadDate: domain.Timestamp{Time: time.Now().UTC().Truncate(time.Second)},
	}
	f.documents[doc.ID] = doc
	f.contents[doc.ID] = string(data)
	c.JSON(http.StatusOK, doc)
}

func (f *FakeAPI) process(c *gin.Context) {
	doc, ok := f.documentOf(c)
	if !ok {
		return
	}

	f.mu.Lock()
	f.processed[doc.ID] = true
	words := f.wordsLocked(doc)
	f.mu.Unlock()

	c.JSON(http.StatusOK, words)
}

func (f *FakeAPI) words(c *gin.Context) {
	doc, ok := f.documentOf(c)
	if !ok {
		return
	}

	f.mu.Lock()
	words := []domain.WordStat{}
	if f.processed[doc.ID] {
		words = f.wordsLocked(doc)
	}
	f.mu.Unlock()

	c.JSON(http.StatusOK, words)
}

// wordsLocked counts the document's words, most frequent first, and joins the owner's dictionary
func (f *FakeAPI) wordsLocked(doc domain.Document) []domain.WordStat {
	counts := make(map[string]int)
	var order []string
	for _, w := range strings.Fields(strings.ToLower(f.contents[doc.ID])) {
		w = strings.Trim(w, ".,;:!?\"'()")
		if w == "" {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	dict := make(map[string]string)
	for _, e := range f.translations[doc.UserID] {
		dict[e.Word] = e.Translation
	}

	stats := make([]domain.WordStat, 0, len(order))
	for _, w := range order {
		stats = append(stats, domain.WordStat{Word: w, Frequency: counts[w], Translation: dict[w]})
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Frequency > stats[j].Frequency })
	return stats
}

func (f *FakeAPI) deleteDocument(c *gin.Context) {
	doc, ok := f.documentOf(c)
	if !ok {
		return
	}

	f.mu.Lock()
	delete(f.documents, doc.ID)
	delete(f.contents, doc.ID)
	delete(f.processed, doc.ID)
	f.mu.Unlock()

	c.Status(http.StatusNoContent)
}

func (f *FakeAPI) export(c *gin.Context) {
	doc, ok := f.documentOf(c)
	if !ok {
		return
	}

	f.mu.Lock()
	words := f.wordsLocked(doc)
	f.mu.Unlock()

	var b strings.Builder
	b.WriteString("word,frequency,translation\n")
	for _, w := range words {
		fmt.Fprintf(&b, "%s,%d,%s\n", w.Word, w.Frequency, w.Translation)
	}

	var contentType, ext string
	switch c.Param("format") {
	case "csv":
		contentType, ext = "text/csv", "csv"
	case "excel":
		contentType, ext = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx"
	case "pdf":
		contentType, ext = "application/pdf", "pdf"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unsupported export format"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_analysis.%s", doc.Filename, ext))
	c.Data(http.StatusOK, contentType, []byte(b.String()))
}

var fakeDictionary = map[string][]string{
	"government": {"সরকার", "প্রশাসন"},
	"election":   {"নির্বাচন"},
	"people":     {"জনগণ", "মানুষ"},
}

func (f *FakeAPI) suggestions(c *gin.Context) {
	word := c.Param("word")
	suggestions := fakeDictionary[strings.ToLower(word)]
	if suggestions == nil {
		suggestions = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"word":        word,
		"suggestions": suggestions,
		"is_common":   len(suggestions) > 0,
	})
}

func (f *FakeAPI) upsertTranslationLocked(userID int64, word, translation string) domain.DictionaryEntry {
	word = strings.ToLower(word)
	entries := f.translations[userID]
	for i := range entries {
		if entries[i].Word == word {
			entries[i].Translation = translation
			return entries[i]
		}
	}

	f.nextID++
	entry := domain.DictionaryEntry{
		ID:          f.nextID,
		UserID:      userID,
		Word:        word,
		Translation: translation,
		CreatedAt:   domain.Timestamp{Time: time.Now().UTC().Truncate(time.Second)},
	}
	f.translations[userID] = append(entries, entry)
	return entry
}

func (f *FakeAPI) saveTranslation(c *gin.Context) {
	var req struct {
		Word        string `json:"word"`
		Translation string `json:"translation"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Word == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"msg": "field required"}}})
		return
	}

	f.mu.Lock()
	entry := f.upsertTranslationLocked(userIDOf(c), req.Word, req.Translation)
	f.mu.Unlock()

	c.JSON(http.StatusOK, entry)
}

func (f *FakeAPI) batch(c *gin.Context) {
	var req struct {
		Words []string `json:"words"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"msg": "field required"}}})
		return
	}

	f.mu.Lock()
	f.batches = append(f.batches, req.Words)
	for _, w := range req.Words {
		f.upsertTranslationLocked(userIDOf(c), w, "auto:"+w)
	}
	f.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"translated": len(req.Words)})
}

func (f *FakeAPI) userTranslations(c *gin.Context) {
	f.mu.Lock()
	entries := append([]domain.DictionaryEntry{}, f.translations[userIDOf(c)]...)
	f.mu.Unlock()

	c.JSON(http.StatusOK, entries)
}

func (f *FakeAPI) deleteTranslation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Translation not found"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	userID := userIDOf(c)
	entries := f.translations[userID]
	for i, e := range entries {
		if e.ID == id {
			f.translations[userID] = append(entries[:i], entries[i+1:]...)
			c.Status(http.StatusOK)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Translation not found"})
}
