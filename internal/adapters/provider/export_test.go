package provider

var ParseRetryAfter = parseRetryAfter
