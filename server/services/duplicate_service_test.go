package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"ciderserver/matching"
	apperrors "ciderserver/server/errors"
	"ciderserver/server/monitoring"
)

// MockCollectionSource is a mock for the CollectionSource
type MockCollectionSource struct {
	mock.Mock
}

func (m *MockCollectionSource) Snapshot() ([]matching.StoredCandidate, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]matching.StoredCandidate), args.Error(1)
}

// DuplicateServiceTestSuite is a test suite for DuplicateService
type DuplicateServiceTestSuite struct {
	suite.Suite
	service    *DuplicateService
	mockSource *MockCollectionSource
}

// SetupTest sets up the test suite
func (suite *DuplicateServiceTestSuite) SetupTest() {
	suite.mockSource = new(MockCollectionSource)
	suite.service = NewDuplicateService(suite.mockSource, matching.NewDefaultEngine(), monitoring.NewMetricsCollector())
}

func strengthPtr(v float64) *float64 {
	return &v
}

func sampleCollection() []matching.StoredCandidate {
	return []matching.StoredCandidate{
		{ID: 1, Candidate: matching.Candidate{Name: "Old Mout Kiwi & Lime", Brand: "Old Mout", StrengthPercent: strengthPtr(4.0), Container: matching.ContainerBottle}},
		{ID: 2, Candidate: matching.Candidate{Name: "Angry Orchard Crisp Apple", Brand: "Angry Orchard", StrengthPercent: strengthPtr(5.0), Container: matching.ContainerCan}},
		{ID: 3, Candidate: matching.Candidate{Name: "Thatchers Gold", Brand: "Thatchers", StrengthPercent: strengthPtr(4.8), Container: matching.ContainerBottle}},
	}
}

// TestQuickCheck_ExactMatch tests detection of an exact normalized match
func (suite *DuplicateServiceTestSuite) TestQuickCheck_ExactMatch() {
	// Arrange
	suite.mockSource.On("Snapshot").Return(sampleCollection(), nil)

	// Act
	result, err := suite.service.QuickCheck(context.Background(), "old mout kiwi lime", "OLD MOUT")

	// Assert
	suite.NoError(err)
	suite.True(result.IsDuplicate)
	suite.Equal(1.0, result.Confidence)
	suite.Equal("Exact match found", result.Message)
	suite.mockSource.AssertExpectations(suite.T())
}

// TestQuickCheck_NoMatch tests a name that matches nothing in the collection
func (suite *DuplicateServiceTestSuite) TestQuickCheck_NoMatch() {
	// Arrange
	suite.mockSource.On("Snapshot").Return(sampleCollection(), nil)

	// Act
	result, err := suite.service.QuickCheck(context.Background(), "Completely Different Perry", "Nobody")

	// Assert
	suite.NoError(err)
	suite.False(result.IsDuplicate)
	suite.Equal(0.0, result.Confidence)
}

// TestQuickCheck_EmptyName tests validation of a blank name
func (suite *DuplicateServiceTestSuite) TestQuickCheck_EmptyName() {
	// Act
	_, err := suite.service.QuickCheck(context.Background(), "   ", "Old Mout")

	// Assert
	suite.Error(err)
	suite.IsType(&apperrors.AppError{}, err)
	appErr := err.(*apperrors.AppError)
	suite.Equal(http.StatusBadRequest, appErr.Code)
	suite.Contains(appErr.Message, "name is required")
	suite.mockSource.AssertNotCalled(suite.T(), "Snapshot")
}

// TestQuickCheck_SnapshotError tests error handling when the collection cannot be loaded
func (suite *DuplicateServiceTestSuite) TestQuickCheck_SnapshotError() {
	// Arrange
	suite.mockSource.On("Snapshot").Return(nil, errors.New("database connection failed"))

	// Act
	_, err := suite.service.QuickCheck(context.Background(), "Thatchers Gold", "Thatchers")

	// Assert
	suite.Error(err)
	suite.IsType(&apperrors.AppError{}, err)
	appErr := err.(*apperrors.AppError)
	suite.Equal(http.StatusInternalServerError, appErr.Code)
	suite.Contains(err.Error(), "failed to load collection snapshot")
	suite.Contains(err.Error(), "database connection failed")
}

// TestFullCheck_Duplicate tests detection of a near-identical record
func (suite *DuplicateServiceTestSuite) TestFullCheck_Duplicate() {
	// Arrange
	suite.mockSource.On("Snapshot").Return(sampleCollection(), nil)

	item := matching.Candidate{
		Name:            "Angry Orchard Crisp Apple",
		Brand:           "Angry Orchard",
		StrengthPercent: strengthPtr(5.0),
		Container:       matching.ContainerCan,
	}

	// Act
	result, err := suite.service.FullCheck(context.Background(), item)

	// Assert
	suite.NoError(err)
	suite.True(result.IsDuplicate)
	suite.False(result.HasSimilar)
	suite.Equal(1.0, result.Confidence)
	suite.NotNil(result.ExistingMatch)
	suite.Equal(int64(2), result.ExistingMatch.ID)
	suite.Contains(result.Message, "Possible duplicate")
	suite.Empty(result.SimilarMatches)
}

// TestFullCheck_EmptyCollection tests the answer for an empty collection
func (suite *DuplicateServiceTestSuite) TestFullCheck_EmptyCollection() {
	// Arrange
	suite.mockSource.On("Snapshot").Return([]matching.StoredCandidate{}, nil)

	// Act
	result, err := suite.service.FullCheck(context.Background(), matching.Candidate{Name: "Anything"})

	// Assert
	suite.NoError(err)
	suite.False(result.IsDuplicate)
	suite.False(result.HasSimilar)
	suite.Equal("No similar ciders found", result.Message)
}

// TestFullCheck_InvalidStrength tests validation of the strength bounds
func (suite *DuplicateServiceTestSuite) TestFullCheck_InvalidStrength() {
	// Act
	_, err := suite.service.FullCheck(context.Background(), matching.Candidate{
		Name:            "Strong Stuff",
		StrengthPercent: strengthPtr(150),
	})

	// Assert
	suite.Error(err)
	suite.IsType(&apperrors.AppError{}, err)
	appErr := err.(*apperrors.AppError)
	suite.Equal(http.StatusBadRequest, appErr.Code)
	suite.Contains(appErr.Message, "strength percent")
	suite.mockSource.AssertNotCalled(suite.T(), "Snapshot")
}

// TestSuggestNames_PrefixMatch tests autocomplete over collection names
func (suite *DuplicateServiceTestSuite) TestSuggestNames_PrefixMatch() {
	// Arrange
	suite.mockSource.On("Snapshot").Return(sampleCollection(), nil)

	// Act
	names, err := suite.service.SuggestNames(context.Background(), "old")

	// Assert: совпадение с начала строки раньше совпадения по подстроке
	suite.NoError(err)
	suite.Equal([]string{"Old Mout Kiwi & Lime", "Thatchers Gold"}, names)
}

// TestSuggestNames_ShortPrefix tests that a one-rune prefix yields nothing
func (suite *DuplicateServiceTestSuite) TestSuggestNames_ShortPrefix() {
	// Arrange
	suite.mockSource.On("Snapshot").Return(sampleCollection(), nil)

	// Act
	names, err := suite.service.SuggestNames(context.Background(), "o")

	// Assert
	suite.NoError(err)
	suite.Empty(names)
}

// TestSuggestBrands_PrefixMatch tests autocomplete over collection brands
func (suite *DuplicateServiceTestSuite) TestSuggestBrands_PrefixMatch() {
	// Arrange
	suite.mockSource.On("Snapshot").Return(sampleCollection(), nil)

	// Act
	brands, err := suite.service.SuggestBrands(context.Background(), "tha")

	// Assert
	suite.NoError(err)
	suite.Equal([]string{"Thatchers"}, brands)
}

// TestSuggestNames_SnapshotError tests error handling for suggestions
func (suite *DuplicateServiceTestSuite) TestSuggestNames_SnapshotError() {
	// Arrange
	suite.mockSource.On("Snapshot").Return(nil, errors.New("database query failed"))

	// Act
	names, err := suite.service.SuggestNames(context.Background(), "old")

	// Assert
	suite.Error(err)
	suite.Nil(names)
	suite.IsType(&apperrors.AppError{}, err)
	appErr := err.(*apperrors.AppError)
	suite.Equal(http.StatusInternalServerError, appErr.Code)
}

func TestDuplicateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DuplicateServiceTestSuite))
}
