// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the JSON endpoints.

# Request Types

  - SubmitQuestionRequest: question, name, email

# Response Types

  - SubmitQuestionResponse: id, forwarded, message
  - TrendingResponse: headline, question_text, stat, caption, index, total
  - SummaryResponse: filters, rows, cards, empty, message
  - CardSummary: question_id, question_text, top_response, responses, counts
  - ResponseCount: response, count, percent
  - ErrorResponse: error, message
  - ProxyError: error

HTML pages use the view models in package render instead.
*/
package models
