package helpers

import (
	"fmt"
	"os"
	"path/filepath"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// OpenDataFile opens a data file inside the given data directory.
func OpenDataFile(dataDirectory, fileName string) (*os.File, error) {
	filePath := filepath.Join(dataDirectory, fileName)
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening data file %s: %w", fileName, err)
	}
	return file, nil
}

// DeleteDataFile deletes a data file.
func DeleteDataFile(filePath string) error {
	return os.Remove(filePath)
}

// FileExists checks if a file exists and is not a directory.
func FileExists(filename string, logger *zap.SugaredLogger) bool {
	info, err := os.Stat(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return false
		}
		logger.Infof("Error checking file %s for existence: %s", filename, err)
		return false
	}
	return !info.IsDir()
}

// EncodeBSON encodes a value into BSON for storage in a data file.
func EncodeBSON(value interface{}) ([]byte, error) {
	bsonData, err := bson.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("error encoding BSON: %w", err)
	}
	return bsonData, nil
}

// DecodeBSON decodes BSON data from a data file into out.
func DecodeBSON(bsonData []byte, out interface{}) error {
	if err := bson.Unmarshal(bsonData, out); err != nil {
		return fmt.Errorf("error decoding BSON: %w", err)
	}
	return nil
}
