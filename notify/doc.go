// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify defines the boundary between winner resolution and outward
notification.

The server decides whether an event is warranted (a segment's resolved
winner changed on a score save) and hands a Winner to the configured
Notifier; what the Notifier does with it — email, webhook, nothing — is
outside the core. LogNotifier, which just logs the event, is the default
and the test double.
*/
package notify
