// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// video fetcher services, handlers and the command-line client.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or stored as the error of a failed task. Clients show
// them verbatim, so the wording is part of the API.
package app

const (
	// MsgProvideURL is returned when POST /api/download carries no URL.
	MsgProvideURL = "Please provide a URL."

	// MsgInvalidURL is returned when the URL does not belong to TikTok or
	// Instagram.
	MsgInvalidURL = "Please enter a valid TikTok or Instagram URL."

	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded.
	MsgInvalidDataProvided = "Invalid request body."

	// MsgTaskNotFound is returned by the status endpoint for unknown task IDs.
	MsgTaskNotFound = "Task not found."

	// MsgFileNotReady is returned when a file is requested for a task that
	// is unknown or has not completed.
	MsgFileNotReady = "File not ready."

	// MsgFileNotFound is returned when a completed task's file is no longer
	// in the download directory.
	MsgFileNotFound = "File not found."

	// MsgQueueFull is returned when no more downloads can be accepted.
	MsgQueueFull = "Server is busy. Please try again in a moment."

	// MsgRequestTimeout is returned when a request outlives the server's
	// request timeout.
	MsgRequestTimeout = "Request timed out."

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "Internal server error."
)

// Task error messages stored in the error field of failed tasks.
const (
	MsgPrivateContent = "This content is private or requires login."
	MsgVideoNotFound  = "Video not found. It may have been deleted."
	MsgDownloadFailed = "Could not download the video. It may be unavailable or " +
		"the platform may be blocking the request."
	MsgFileMissingAfterDownload = "Download completed but file not found."

	// MsgUnexpectedErrorPrefix precedes the text of errors that did not come
	// from the downloader.
	MsgUnexpectedErrorPrefix = "Unexpected error: "
)
