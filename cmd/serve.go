package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/jsphweid/mki/constants"
	"github.com/jsphweid/mki/db"
	"github.com/jsphweid/mki/file"
	"github.com/jsphweid/mki/mki"
	"github.com/jsphweid/mki/model"
	"github.com/jsphweid/mki/sample"
	"github.com/jsphweid/mki/util"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var scoreDir string

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves score files over HTTP",
	Long:  `Serves the score files in MKI_DIR and converts between JSON and MKI.`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// LoadServeFiles points the handlers at MKI_DIR, creating it if needed.
func LoadServeFiles() {
	scoreDir = constants.GetScoreDir()
	cobra.CheckErr(util.EnsureDir(scoreDir))
}

// writeJSON marshals v before any header is written. Values JSON cannot hold,
// such as NaN or infinite ticks, answer 422.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusUnprocessableEntity
		data, _ = json.Marshal(model.ErrorResponse{Error: "could not encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

// scorePath maps a request name onto a file in scoreDir. Names that would
// leave the directory are rejected.
func scorePath(name string) (string, bool) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", false
	}
	return file.NormalizePath(filepath.Join(scoreDir, name)), true
}

func scoreFileName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), constants.FileExtension)
}

func HandleListScores(w http.ResponseWriter, r *http.Request) {
	paths, err := file.GatherScorePaths(scoreDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	var names []string
	for _, path := range paths {
		names = append(names, filepath.Base(path))
	}
	metadatas, err := db.GetScoreMetadatas(names)
	if err != nil {
		fmt.Println("Could not get score metadata: " + err.Error())
	}

	res := make([]model.ScoreListing, 0, len(paths))
	for _, path := range paths {
		listing := model.ScoreListing{Name: scoreFileName(path)}
		if stats, err := os.Stat(path); err == nil {
			listing.Size = stats.Size()
		}
		if m, ok := metadatas[filepath.Base(path)]; ok {
			listing.Metadata = &m
		}
		res = append(res, listing)
	}
	writeJSON(w, http.StatusOK, res)
}

func loadNamed(w http.ResponseWriter, r *http.Request) (string, *model.Score, model.Options, bool) {
	name := mux.Vars(r)["name"]
	path, ok := scorePath(name)
	if !ok {
		writeError(w, http.StatusBadRequest, errors.Errorf("invalid score name %q", name))
		return "", nil, model.Options{}, false
	}
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, errors.Errorf("score %q not found", name))
		return "", nil, model.Options{}, false
	}
	s, opts, err := file.Load(path)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return "", nil, model.Options{}, false
	}
	return scoreFileName(path), s, opts, true
}

func HandleGetScore(w http.ResponseWriter, r *http.Request) {
	name, s, opts, ok := loadNamed(w, r)
	if !ok {
		return
	}
	doc := toDocument(name, s, opts)
	metadatas, err := db.GetScoreMetadatas([]string{name + constants.FileExtension})
	if err != nil {
		fmt.Println("Could not get score metadata: " + err.Error())
	}
	if m, ok := metadatas[name+constants.FileExtension]; ok {
		doc.Metadata = &m
	}
	writeJSON(w, http.StatusOK, doc)
}

func HandlePutScore(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	path, ok := scorePath(name)
	if !ok {
		writeError(w, http.StatusBadRequest, errors.Errorf("invalid score name %q", name))
		return
	}
	s, opts, ok := readDocument(w, r)
	if !ok {
		return
	}
	path, warnings, err := file.Save(path, s, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	doc := toDocument(scoreFileName(path), s, opts)
	doc.Warnings = warningStrings(warnings)
	writeJSON(w, http.StatusOK, doc)
}

// HandleSample returns a short excerpt of a stored score. Query parameters
// are from (tick, default 0) and n (notes, default constants.SampleSize).
func HandleSample(w http.ResponseWriter, r *http.Request) {
	var from float64
	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.Wrap(err, "invalid from"))
			return
		}
		if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			writeError(w, http.StatusBadRequest, errors.Errorf("invalid from %q", v))
			return
		}
		from = parsed
	}
	n := constants.SampleSize
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, errors.Errorf("invalid n %q", v))
			return
		}
		n = parsed
	}

	name, s, opts, ok := loadNamed(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toDocument(name, sample.Create(s, from, n), opts))
}

// HandleDecode reads raw MKI bytes from the body and answers with JSON.
func HandleDecode(w http.ResponseWriter, r *http.Request) {
	s, opts, err := file.Read(r.Body, "request body")
	if err != nil {
		var fe *mki.FormatError
		switch {
		case errors.As(err, &fe):
			writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, file.ErrTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, err)
		default:
			writeError(w, http.StatusBadRequest, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, toDocument("", s, opts))
}

// HandleEncode reads a JSON score and answers with MKI bytes. Warnings are
// sent one per X-Mki-Warning header.
func HandleEncode(w http.ResponseWriter, r *http.Request) {
	s, opts, ok := readDocument(w, r)
	if !ok {
		return
	}
	data, warnings := mki.Encode(s, opts)
	for _, warning := range warnings {
		w.Header().Add("X-Mki-Warning", warning.String())
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func readDocument(w http.ResponseWriter, r *http.Request) (*model.Score, model.Options, bool) {
	reqBody, err := io.ReadAll(io.LimitReader(r.Body, constants.MaxUploadSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "could not read request body"))
		return nil, model.Options{}, false
	}
	if len(reqBody) > constants.MaxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge,
			errors.Errorf("request body is larger than %d bytes", constants.MaxUploadSize))
		return nil, model.Options{}, false
	}

	var doc model.ScoreDocument
	if err := json.Unmarshal(reqBody, &doc); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "could not unmarshal request body"))
		return nil, model.Options{}, false
	}
	s, err := fromDocument(doc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, model.Options{}, false
	}
	return s, doc.Options, true
}

func NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/scores", HandleListScores).Methods("GET")
	router.HandleFunc("/scores/{name}", HandleGetScore).Methods("GET")
	router.HandleFunc("/scores/{name}", HandlePutScore).Methods("PUT")
	router.HandleFunc("/scores/{name}/sample", HandleSample).Methods("GET")
	router.HandleFunc("/decode", HandleDecode).Methods("POST")
	router.HandleFunc("/encode", HandleEncode).Methods("POST")
	return router
}

func serve() {
	LoadServeFiles()

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT"},
		ExposedHeaders: []string{"X-Mki-Warning"},
	})
	addr := constants.GetServeAddr()
	fmt.Printf("Serving %v on %v\n", scoreDir, addr)
	log.Fatal(http.ListenAndServe(addr, c.Handler(NewRouter())))
}
