package service

// Notification template keys. The catalog in internal/adapter/notify must
// define every one of them for the fallback locale.
const (
	tplMaintenance              = "maintenance"
	tplWrongFormat              = "wrong_format"
	tplHelp                     = "help"
	tplMute                     = "mute"
	tplUnmute                   = "unmute"
	tplNoAccount                = "no_account"
	tplBalance                  = "balance"
	tplAccountRegister          = "account_register"
	tplAccountAlreadyRegistered = "account_already_registered"
	tplAccountCreate            = "account_create"
	tplAccount                  = "account"
	tplTipSuccess               = "tip_success"
	tplMultiTipSuccess          = "multi_tip_success"
	tplReceiverTip              = "receiver_tip"
	tplTipFailed                = "tip_failed"
	tplTransferFailed           = "transfer_failed"
	tplRedirectTip              = "redirect_tip"
	tplPrivateTip               = "private_tip"
	tplSelfTip                  = "self_tip"
	tplNoRecipients             = "no_recipients"
	tplInvalidAmount            = "invalid_amount"
	tplBelowMinimum             = "below_minimum"
	tplInsufficientBalance      = "insufficient_balance"
	tplWithdrawSyntax           = "withdraw_syntax"
	tplInvalidAddress           = "invalid_address"
	tplNoBalance                = "no_balance"
	tplWithdrawSuccess          = "withdraw_success"
	tplDonateSyntax             = "donate_syntax"
	tplDonateSuccess            = "donate_success"
	tplLanguageMissing          = "language_missing"
	tplLanguageSuccess          = "language_success"
	tplUnknownLanguage          = "unknown_language"
	tplLanguageList             = "language_list"
	tplAutoDonateSuccess        = "auto_donate_success"
	tplAutoDonateMissing        = "auto_donate_missing"
	tplAutoDonateNotANumber     = "auto_donate_not_a_number"
	tplAutoDonateOutOfRange     = "auto_donate_out_of_range"
)

var templateKeys = []string{
	tplMaintenance, tplWrongFormat, tplHelp, tplMute, tplUnmute, tplNoAccount, tplBalance,
	tplAccountRegister, tplAccountAlreadyRegistered, tplAccountCreate, tplAccount,
	tplTipSuccess, tplMultiTipSuccess, tplReceiverTip, tplTipFailed, tplTransferFailed,
	tplRedirectTip, tplPrivateTip, tplSelfTip, tplNoRecipients, tplInvalidAmount,
	tplBelowMinimum, tplInsufficientBalance, tplWithdrawSyntax, tplInvalidAddress,
	tplNoBalance, tplWithdrawSuccess, tplDonateSyntax, tplDonateSuccess,
	tplLanguageMissing, tplLanguageSuccess, tplUnknownLanguage, tplLanguageList,
	tplAutoDonateSuccess, tplAutoDonateMissing, tplAutoDonateNotANumber, tplAutoDonateOutOfRange,
}
