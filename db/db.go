package db

import (
	"strconv"

	"github.com/jsphweid/mki/constants"
	"github.com/jsphweid/mki/model"
	"github.com/pkg/errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

// BatchGetItem accepts at most 100 keys per request
const maxKeys = 100

func makeKeys(filenames []string) []map[string]*dynamodb.AttributeValue {
	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		key := make(map[string]*dynamodb.AttributeValue)
		key["PK"] = &dynamodb.AttributeValue{
			S: aws.String(filename),
		}
		keys = append(keys, key)
	}
	return keys
}

func parseItem(v map[string]*dynamodb.AttributeValue) (string, model.ScoreMetadata, bool) {
	var s model.ScoreMetadata
	pk, ok := v["PK"]
	if !ok || pk.S == nil {
		return "", s, false
	}
	if year, ok := v["Year"]; ok && year.N != nil {
		parsed, _ := strconv.ParseUint(*year.N, 10, 32)
		s.Year = uint(parsed)
	}
	s.Artist = stringAttr(v, "Artist")
	s.Title = stringAttr(v, "Title")
	return *pk.S, s, true
}

func stringAttr(v map[string]*dynamodb.AttributeValue, name string) string {
	if a, ok := v[name]; ok && a.S != nil {
		return *a.S
	}
	return ""
}

// GetScoreMetadatas looks up titles and artists for score file names. It
// returns an empty map when no metadata endpoint is configured.
func GetScoreMetadatas(filenames []string) (map[string]model.ScoreMetadata, error) {
	res := make(map[string]model.ScoreMetadata)

	endpoint := constants.GetMetadataEndpoint()
	if len(filenames) == 0 || endpoint == "" {
		return res, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	client := dynamodb.New(sess)

	for start := 0; start < len(filenames); start += maxKeys {
		end := start + maxKeys
		if end > len(filenames) {
			end = len(filenames)
		}
		input := &dynamodb.BatchGetItemInput{
			RequestItems: map[string]*dynamodb.KeysAndAttributes{
				constants.MetadataTable: {Keys: makeKeys(filenames[start:end])},
			},
		}
		dbres, err := client.BatchGetItem(input)
		if err != nil {
			return nil, errors.Wrap(err, "error from DynamoDB")
		}
		for _, v := range dbres.Responses[constants.MetadataTable] {
			if name, s, ok := parseItem(v); ok {
				res[name] = s
			}
		}
	}

	return res, nil
}
