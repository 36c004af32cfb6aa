// Package tweetgrab drives a browser through a two step session replay.
//
// First a human logs in to the site in a browser opened by Session.Login and the
// session cookies are written to a jar file. Later runs load that jar with
// Session.Restore and collect the visible text of every result on a search
// page with Session.Search.
//
// The commands under lib/utils wire these steps together. Every blocking call
// takes a context.Context; the Must* variants panic instead of returning
// errors.
package tweetgrab
