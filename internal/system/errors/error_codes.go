/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package errors

const errorPrefix = "MDS-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	EXECUTE_QUERY = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while executing database query.",
	}

	ADD_BUSINESS_RULE = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while adding business rule.",
	}

	FETCH_BUSINESS_RULES = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while fetching business rule(s).",
	}

	UPDATE_BUSINESS_RULE = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while updating business rule.",
	}

	CASCADE_DELETE = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while deleting business rule and its dependent records.",
	}

	UPSERT_APPROVAL = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while recording approval.",
	}

	FETCH_APPROVALS = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while fetching approval records.",
	}

	APPEND_TEST_RESULT = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while storing rule test result.",
	}

	FETCH_TEST_RESULTS = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while fetching rule test results.",
	}

	ADD_DEPLOYMENT_RECORD = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while recording rule deployment.",
	}

	FETCH_DUPLICATE_PAIR = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Error while fetching duplicate pair(s).",
	}

	UPDATE_DUPLICATE_PAIR = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while updating duplicate pair.",
	}

	TEST_EXECUTION = ErrorMessage{
		Code:    errorPrefix + "15014",
		Message: "Error while executing rule test cases.",
	}

	PROVIDERS_EXHAUSTED = ErrorMessage{
		Code:    errorPrefix + "15015",
		Message: "All AI analysis providers are unavailable.",
	}

	PROVIDER_PROBE = ErrorMessage{
		Code:    errorPrefix + "15016",
		Message: "Error while probing AI provider.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15017",
		Message: "Error while marshalling JSON.",
	}

	UNMARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15018",
		Message: "Error while un-marshalling JSON.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "60001",
		Message: "Invalid request format.",
	}

	VALIDATION_FAILED = ErrorMessage{
		Code:    errorPrefix + "60002",
		Message: "Required fields are missing or malformed.",
	}

	RULE_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "60003",
		Message: "Business rule not found.",
	}

	PAIR_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "60004",
		Message: "Duplicate pair not found.",
	}

	PROVIDER_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "60005",
		Message: "AI provider not found.",
	}

	INVALID_APPROVAL_LEVEL = ErrorMessage{
		Code:    errorPrefix + "60006",
		Message: "Approval level is not in the required set.",
	}

	INVALID_RULE_STATE = ErrorMessage{
		Code:    errorPrefix + "60007",
		Message: "Operation is not allowed in the rule's current state.",
	}

	RULE_ALREADY_PENDING = ErrorMessage{
		Code:    errorPrefix + "60008",
		Message: "Rule is already pending approval.",
	}

	CONFIRMATION_MISMATCH = ErrorMessage{
		Code:    errorPrefix + "60009",
		Message: "Confirmation name does not match the rule name.",
	}

	INVALID_CONDITION = ErrorMessage{
		Code:    errorPrefix + "60010",
		Message: "Rule condition is malformed.",
	}

	INVALID_ACTION = ErrorMessage{
		Code:    errorPrefix + "60011",
		Message: "Rule action is malformed.",
	}

	RULE_NOT_TESTED = ErrorMessage{
		Code:    errorPrefix + "60012",
		Message: "Rule has no recorded test run.",
	}

	UNAUTHORIZED = ErrorMessage{
		Code:    errorPrefix + "60013",
		Message: "Authentication or authorization failed.",
	}
)
