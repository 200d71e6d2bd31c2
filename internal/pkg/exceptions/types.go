package exceptions

import (
	"careplan-service/internal/pkg/constvars"
	"fmt"
)

var (
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(fmt.Errorf("%w: %w", ErrPreconditionFailed, err), constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotParseJSON)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevServerProcess)
	}
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientCareplanProviderUnavailable, constvars.ErrDevSendHTTPRequest)
	}
	ErrReadHTTPResponse = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientCareplanProviderUnavailable, constvars.ErrDevReadHTTPResponse)
	}
	ErrInvalidAPIKey = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientInvalidAPIKey, constvars.ErrDevInvalidAPIKey)
	}

	// Care plan
	ErrPrecondition = func(err error) *CustomError {
		return BuildNewCustomError(fmt.Errorf("%w: %w", ErrPreconditionFailed, err), constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCareplanPrecondition)
	}
	ErrCareplanProviderAuth = func(err error, provider string) *CustomError {
		return BuildNewCustomError(fmt.Errorf("%w: %w", ErrProviderAuthFailure, err), constvars.StatusBadGateway, constvars.ErrClientCareplanProviderUnavailable, fmt.Sprintf(constvars.ErrDevCareplanProviderAuth, provider))
	}
	ErrCareplanDecodeResponse = func(err error, resource, provider string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientCareplanProviderUnavailable, fmt.Sprintf(constvars.ErrDevCareplanDecodeResponse, resource, provider))
	}
	ErrCareplanCapabilityNotSupported = func(provider, capability string) *CustomError {
		return BuildNewCustomError(fmt.Errorf("%w: %w", ErrPreconditionFailed, ErrCapabilityNotSupported), constvars.StatusNotImplemented, constvars.ErrClientCareplanFeatureNotSupported, fmt.Sprintf(constvars.ErrDevCareplanCapabilityNotSupported, provider, capability))
	}
	ErrCareplanUnknownProvider = func(provider string) *CustomError {
		return BuildNewCustomError(ErrUnknownProvider, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevCareplanUnknownProvider, provider))
	}
	ErrCareplanUnknownHealthPriority = func(category string) *CustomError {
		return BuildNewCustomError(fmt.Errorf("%w: %w", ErrPreconditionFailed, ErrUnknownHealthPriority), constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevCareplanUnknownHealthPriority, category))
	}
	ErrCareplanEnrollmentNotFound = func(err error, enrollmentID string) *CustomError {
		return BuildNewCustomError(fmt.Errorf("%w: %w", ErrPreconditionFailed, err), constvars.StatusNotFound, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevCareplanEnrollmentNotFound, enrollmentID))
	}
	ErrCareplanParticipantNotResolvable = func(err error, patientUserID string) *CustomError {
		return BuildNewCustomError(fmt.Errorf("%w: %w", ErrPreconditionFailed, err), constvars.StatusUnprocessableEntity, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevCareplanParticipantNotResolvable, patientUserID))
	}
	ErrCareplanMissingProviderID = func(resource, provider string) *CustomError {
		return BuildNewCustomError(ErrMissingProviderID, constvars.StatusBadGateway, constvars.ErrClientCareplanProviderUnavailable, fmt.Sprintf(constvars.ErrDevCareplanMissingProviderID, provider, resource))
	}
	ErrCareplanMissingAssessmentDetails = func(err error) *CustomError {
		return BuildNewCustomError(fmt.Errorf("%w: %w", ErrPreconditionFailed, err), constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCareplanMissingAssessmentDetails)
	}

	// Database
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateDocument)
	}
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDocuments)
	}

	// Redis
	ErrRedisGetNoData = func(err error, key string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevRedisGetNoData, key))
	}
	ErrRedisGetData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisSetData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisDeleteData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}
	ErrRedisRefreshLockTTL = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisRefreshLockTTL)
	}

	// Messaging and storage
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, queueName))
	}
	ErrMinioPutObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioFailedToPutObject, bucketName))
	}
)
