/*
Package cmds is the scripting-command adapter over a scene session. Each
method mirrors one command of the host application's scripting layer,
such as CreateNode, AddAttr, ConnectAttr and Ls, translating string
addresses and option flags into calls against the session's public contract.

The adapter holds no state of its own besides the session it wraps; all
graph state, selection state and cascade behavior live in the session.
*/
package cmds
